// Package mcp provides the Model Context Protocol server for the Reversi game.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - new_game: Create a session, optionally with a theme
//   - game_state: Board, score and legal moves (text or json)
//   - legal_moves: Squares the player to move may play
//   - place: Play a disc using square notation such as d3
//   - reset_game: Restart a session's game
//   - list_sessions, delete_session: Session management
//   - list_themes: Available themes
//   - game_instructions: The rules
//
// Tools call the game service in-process. Service errors and rejected
// placements are returned as tool results, never as protocol errors.
//
// Usage:
//
//	srv := mcp.NewServer(gameService, logger)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
