// Package config provides theme management for the Reversi game.
//
// The config package handles:
//   - Loading themes from JSON or YAML files
//   - Validation through engine.ValidateGameConfig
//   - A built-in classic theme when no file provides one
//   - Theme discovery and listing
//
// Theme Format:
//
// Themes are stored in the config directory as name.json, name.yaml or
// name.yml. Each theme defines:
//   - first_player: "dark" or "light" (black/white are accepted too)
//   - glyphs: one character each for dark, light and empty squares
//   - players: display names announced on each turn
//
// Usage:
//
//	manager, err := config.NewManager("configs", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	theme, err := manager.LoadConfig("ascii")
//	defaultTheme := manager.GetDefault()
//	themes, err := manager.ListConfigs()
package config
