package engine

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BoardSize is the number of rows and columns on the board
	BoardSize = 8

	// MaxPlacements is the number of empty squares at the start of a game
	MaxPlacements = BoardSize*BoardSize - 4
)

var (
	ErrInvalidNotation = errors.New("invalid move notation")
	ErrIllegalMove     = errors.New("illegal move")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidColor    = errors.New("invalid color")
)

// Color identifies a player. There is no third state; an empty square is a Cell.
type Color uint8

const (
	Dark Color = iota + 1
	Light
)

// Opposite returns the other player's color
func (c Color) Opposite() Color {
	if c == Dark {
		return Light
	}
	return Dark
}

// Valid reports whether c is Dark or Light
func (c Color) Valid() bool {
	return c == Dark || c == Light
}

func (c Color) String() string {
	switch c {
	case Dark:
		return "dark"
	case Light:
		return "light"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

// MarshalText encodes the color as "dark" or "light"
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColor, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText plus the
// traditional black/white aliases.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor converts a player name into a Color
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "black", "b":
		return Dark, nil
	case "light", "white", "w":
		return Light, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

// Cell is the state of one square: Empty or occupied by a Color
type Cell uint8

// Empty is the zero Cell
const Empty Cell = 0

// Occupied returns the cell state holding a disc of the given color
func Occupied(c Color) Cell {
	return Cell(c)
}

// Color returns the occupying color, or false for an empty cell
func (c Cell) Color() (Color, bool) {
	if c == Empty {
		return 0, false
	}
	return Color(c), true
}

// IsEmpty reports whether no disc occupies the cell
func (c Cell) IsEmpty() bool {
	return c == Empty
}

// Coordinate is a (row, col) pair; both components are in [0, BoardSize) when valid
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Glyphs are the single-character renderings of each cell state
type Glyphs struct {
	Dark  string `json:"dark" yaml:"dark"`
	Light string `json:"light" yaml:"light"`
	Empty string `json:"empty" yaml:"empty"`
}

// PlayerNames are the display names announced by drivers
type PlayerNames struct {
	Dark  string `json:"dark" yaml:"dark"`
	Light string `json:"light" yaml:"light"`
}

// GameConfig is a theme: who moves first and how the board is displayed
type GameConfig struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	FirstPlayer string      `json:"first_player" yaml:"first_player"`
	Glyphs      Glyphs      `json:"glyphs" yaml:"glyphs"`
	Players     PlayerNames `json:"players" yaml:"players"`
}

// Status is the turn controller's state
type Status string

const (
	AwaitingMove Status = "awaiting_move"
	GameOver     Status = "game_over"
)

// MoveRecord is one entry in the in-memory log of the current game.
// A pass is recorded with Pass set and no coordinate.
type MoveRecord struct {
	MoveNumber int          `json:"move_number"`
	Color      Color        `json:"color"`
	Pass       bool         `json:"pass,omitempty"`
	Coordinate *Coordinate  `json:"coordinate,omitempty"`
	Notation   string       `json:"notation,omitempty"`
	Flipped    []Coordinate `json:"flipped,omitempty"`
}

// Outcome describes what a successful placement did to the game
type Outcome struct {
	Move     MoveRecord `json:"move"`
	Passes   []Color    `json:"passes,omitempty"`
	Next     Color      `json:"next"`
	GameOver bool       `json:"game_over"`
}

// GameState is a read-only snapshot of a game, suitable for JSON encoding
type GameState struct {
	Board      []string     `json:"board"`
	Current    Color        `json:"current"`
	Status     Status       `json:"status"`
	Dark       int          `json:"dark"`
	Light      int          `json:"light"`
	LegalMoves []string     `json:"legal_moves"`
	MoveCount  int          `json:"move_count"`
	LastMove   *MoveRecord  `json:"last_move,omitempty"`
	Winner     string       `json:"winner,omitempty"`
	ConfigName string       `json:"config_name"`
	History    []MoveRecord `json:"history,omitempty"`
}
