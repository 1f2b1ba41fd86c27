// Package session provides in-memory session management for the Reversi game.
//
// Core Types:
//
// Manager stores service.Session values, each owning its own engine
// instance. IDs are matched case-insensitively. When no ID is supplied one
// is generated from a random UUID.
//
// Concurrency:
//
// The manager is safe for concurrent use. It guards its map only; the
// service layer serializes moves within a session.
//
// Usage:
//
//	manager := session.NewManager(logger)
//
//	sess, err := manager.Create("", theme)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	removed := manager.CleanupExpiredSessions(time.Hour)
//
// Sessions are never written to disk; they end with the process.
package session
