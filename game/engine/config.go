package engine

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidConfig is returned by ValidateGameConfig
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultConfig returns the built-in classic theme: dark moves first and
// discs are drawn as ● and ○.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Black and white discs, black moves first",
		FirstPlayer: "dark",
		Glyphs: Glyphs{
			Dark:  "●",
			Light: "○",
			Empty: " ",
		},
		Players: PlayerNames{
			Dark:  "Black",
			Light: "White",
		},
	}
}

// ValidateGameConfig checks that a theme can be used to start a game
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if _, err := ParseColor(config.FirstPlayer); err != nil {
		return fmt.Errorf("%w: first_player: %v", ErrInvalidConfig, err)
	}

	glyphs := []struct {
		field string
		value string
	}{
		{"glyphs.dark", config.Glyphs.Dark},
		{"glyphs.light", config.Glyphs.Light},
		{"glyphs.empty", config.Glyphs.Empty},
	}
	seen := make(map[string]string, len(glyphs))
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			return fmt.Errorf("%w: %s must be exactly one character, got %q", ErrInvalidConfig, g.field, g.value)
		}
		if other, dup := seen[g.value]; dup {
			return fmt.Errorf("%w: %s and %s share the glyph %q", ErrInvalidConfig, other, g.field, g.value)
		}
		seen[g.value] = g.field
	}

	if config.Players.Dark == "" || config.Players.Light == "" {
		return fmt.Errorf("%w: players.dark and players.light are required", ErrInvalidConfig)
	}

	return nil
}

// StartingColor returns the color that moves first under this config
func (c *GameConfig) StartingColor() Color {
	color, err := ParseColor(c.FirstPlayer)
	if err != nil {
		return Dark
	}
	return color
}

// PlayerName returns the display name for color
func (c *GameConfig) PlayerName(color Color) string {
	if color == Light {
		return c.Players.Light
	}
	return c.Players.Dark
}
