package service

import (
	"time"

	"github.com/wricardo/reversi/game/engine"
)

// Reason codes reported when a placement is rejected
const (
	ReasonInvalidNotation = "invalid_notation"
	ReasonIllegalMove     = "illegal_move"
	ReasonGameOver        = "game_over"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// PlaceResult contains the result of a placement. A rejected move is not an
// error: Success is false and ReasonCode says why.
type PlaceResult struct {
	Success    bool               `json:"success"`
	ReasonCode string             `json:"reason_code,omitempty"`
	Message    string             `json:"message"`
	Move       *engine.MoveRecord `json:"move,omitempty"`
	Passes     []engine.Color     `json:"passes,omitempty"`
	GameState  *engine.GameState  `json:"game_state"`
	Events     []GameEvent        `json:"events,omitempty"`
}

// LegalMovesResult lists where the player to move may play
type LegalMovesResult struct {
	Color    engine.Color `json:"color"`
	Moves    []string     `json:"moves"`
	GameOver bool         `json:"game_over"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string             `json:"type"` // "place", "pass", "game_over", "reset"
	Message   string             `json:"message"`
	Timestamp time.Time          `json:"timestamp"`
	Color     engine.Color       `json:"color,omitempty"`
	Position  *engine.Coordinate `json:"position,omitempty"`
}

// ConfigInfo provides information about a theme
type ConfigInfo struct {
	Filename    string `json:"filename,omitempty"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`
	Description string `json:"description"`
	FirstPlayer string `json:"first_player"`
}
