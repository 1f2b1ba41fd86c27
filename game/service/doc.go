// Package service provides the business logic layer for the Reversi game.
//
// The service package implements:
//   - Multi-session game management
//   - Theme selection through a ConfigManager
//   - Placement processing with reason codes for rejected moves
//   - Session lifecycle management
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads and lists themes.
//
// Architecture:
//
// The service layer sits between the transports (terminal, MCP) and the game
// engine. Each session owns its own engine instance; the service serializes
// access so sessions can be driven concurrently.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	configMgr, _ := config.NewManager("configs", logger)
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Place(ctx, info.ID, "d3")
//	if err == nil && !result.Success {
//		fmt.Println(result.ReasonCode) // invalid_notation, illegal_move or game_over
//	}
package service
