// Package engine implements the rules of Reversi (Othello) on an 8x8 board.
//
// The engine package provides:
//   - Coordinates, the eight ray directions and bounds-checked stepping
//   - Move notation parsing ("c4" is column c, row 4)
//   - The Board: legality, flip-run detection, placement and whole-board queries
//   - GameEngine: the turn controller with automatic passes and game over
//   - Themes (GameConfig) describing the first player and board glyphs
//
// Core Types:
//
// Board is a fixed [8][8]Cell array. A Cell is Empty or holds a Color (Dark or
// Light). GameEngine wraps a Board with the player to move and an in-memory
// log of the current game.
//
// Usage:
//
//	game := engine.NewEngineWithDefaults()
//
//	outcome, err := game.PlaceNotation("d3")
//	switch {
//	case errors.Is(err, engine.ErrInvalidNotation):
//		// re-prompt
//	case errors.Is(err, engine.ErrIllegalMove):
//		// same player tries again
//	}
//	fmt.Print(game.Render())
//
// Rules:
//
// A placement is legal when the square is empty and, in at least one
// direction, a run of one or more opposing discs is closed by a disc of the
// mover's color. Every such run is flipped. A player with no legal move
// passes; the game ends when neither player can move, even if empty squares
// remain. The engine does no I/O and is not safe for concurrent use.
package engine
