package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/reversi/game/engine"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned for unknown session IDs
	ErrSessionNotFound = errors.New("session not found")
	// ErrConfigNotFound is returned when a theme does not exist
	ErrConfigNotFound = errors.New("configuration not found")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	logger   *zap.Logger
	// mu serializes every operation. Reads refresh LastAccessedAt too, so
	// they take the same exclusive lock as writes.
	mu sync.Mutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, logger *zap.Logger) GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   logger,
	}
}

// getConfigID returns the config_id for a theme display name
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	return configName
}

// CreateSession creates a new game session. An empty theme name uses the default.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				if available, listErr := s.configs.ListConfigs(); listErr == nil && len(available) > 0 {
					ids := make([]string, 0, len(available))
					for _, cfg := range available {
						ids = append(ids, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: %q, available themes: %s", ErrConfigNotFound, configName, strings.Join(ids, ", "))
				}
			}
			return nil, fmt.Errorf("failed to load theme %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	s.logger.Info("session created", zap.String("session", sess.ID), zap.String("theme", configID))

	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.String("session", sessionID))
	return nil
}

// Place plays a disc for the player to move in the given session
func (s *gameServiceImpl) Place(ctx context.Context, sessionID, notation string) (*PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	mover := sess.Engine.Current()
	outcome, err := sess.Engine.PlaceNotation(notation)
	if err != nil {
		result := &PlaceResult{
			Success:    false,
			ReasonCode: reasonCode(err),
			Message:    err.Error(),
			GameState:  sess.Engine.GetState(),
		}
		if result.ReasonCode == "" {
			return nil, err
		}
		s.logger.Debug("placement rejected",
			zap.String("session", sessionID),
			zap.String("notation", notation),
			zap.String("reason", result.ReasonCode))
		return result, nil
	}

	state := sess.Engine.GetState()
	move := outcome.Move
	result := &PlaceResult{
		Success:   true,
		Move:      &move,
		Passes:    outcome.Passes,
		GameState: state,
		Events:    s.extractEvents(sess.Config, mover, outcome, state),
	}
	result.Message = placeMessage(sess.Config, outcome, state)

	s.logger.Debug("disc placed",
		zap.String("session", sessionID),
		zap.Stringer("color", mover),
		zap.String("notation", move.Notation),
		zap.Int("flipped", len(move.Flipped)))

	return result, nil
}

// Reset starts the session's game over with the same theme
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("session reset", zap.String("session", sessionID))
	return sess.Engine.Reset(), nil
}

// GetGameState returns the current game state for a session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	return sess.Engine.GetState(), nil
}

// LegalMoves lists the squares the player to move may play
func (s *gameServiceImpl) LegalMoves(ctx context.Context, sessionID string) (*LegalMovesResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	coords := sess.Engine.LegalMoves()
	moves := make([]string, 0, len(coords))
	for _, c := range coords {
		moves = append(moves, c.String())
	}

	return &LegalMovesResult{
		Color:    sess.Engine.Current(),
		Moves:    moves,
		GameOver: sess.Engine.IsGameOver(),
	}, nil
}

// RenderBoard draws the session's board with its theme glyphs
func (s *gameServiceImpl) RenderBoard(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}

	return sess.Engine.Render(), nil
}

// ListConfigs returns all available themes
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// lookup fetches a session and refreshes its access time. Callers hold s.mu.
func (s *gameServiceImpl) lookup(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}

	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		s.logger.Warn("failed to update last accessed", zap.String("session", sessionID), zap.Error(err))
	}
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Config,
	}
}

// reasonCode maps engine rejections to reason codes. Unknown errors map to "".
func reasonCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidNotation):
		return ReasonInvalidNotation
	case errors.Is(err, engine.ErrIllegalMove):
		return ReasonIllegalMove
	case errors.Is(err, engine.ErrGameOver):
		return ReasonGameOver
	default:
		return ""
	}
}

// extractEvents describes what a placement caused, in order
func (s *gameServiceImpl) extractEvents(config *engine.GameConfig, mover engine.Color, outcome *engine.Outcome, state *engine.GameState) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      "place",
		Message:   fmt.Sprintf("%s played %s and flipped %d", config.PlayerName(mover), outcome.Move.Notation, len(outcome.Move.Flipped)),
		Timestamp: now,
		Color:     mover,
		Position:  outcome.Move.Coordinate,
	}}

	for _, c := range outcome.Passes {
		events = append(events, GameEvent{
			Type:      "pass",
			Message:   fmt.Sprintf("%s has no legal move and passes", config.PlayerName(c)),
			Timestamp: now,
			Color:     c,
		})
	}

	if outcome.GameOver {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   gameOverMessage(config, state),
			Timestamp: now,
		})
	}

	return events
}

func placeMessage(config *engine.GameConfig, outcome *engine.Outcome, state *engine.GameState) string {
	if outcome.GameOver {
		return gameOverMessage(config, state)
	}
	if len(outcome.Passes) > 0 {
		return fmt.Sprintf("%s passes. %s's turn", config.PlayerName(outcome.Passes[0]), config.PlayerName(outcome.Next))
	}
	return fmt.Sprintf("%s's turn", config.PlayerName(outcome.Next))
}

func gameOverMessage(config *engine.GameConfig, state *engine.GameState) string {
	score := fmt.Sprintf("%s %d, %s %d", config.Players.Dark, state.Dark, config.Players.Light, state.Light)
	switch state.Winner {
	case engine.Dark.String():
		return fmt.Sprintf("Game over. %s wins (%s)", config.Players.Dark, score)
	case engine.Light.String():
		return fmt.Sprintf("Game over. %s wins (%s)", config.Players.Light, score)
	default:
		return fmt.Sprintf("Game over. Draw (%s)", score)
	}
}
