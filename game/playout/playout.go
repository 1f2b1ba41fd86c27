// Package playout plays random legal games, for stress testing the engine
// and for rough statistics about openings.
package playout

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/wricardo/reversi/game/engine"
	"go.uber.org/zap"
)

// ErrTooManyPlacements means a game ran past the number of empty squares
var ErrTooManyPlacements = errors.New("game exceeded the maximum number of placements")

// Result describes one finished game
type Result struct {
	Game       int    `json:"game"`
	Dark       int    `json:"dark"`
	Light      int    `json:"light"`
	Placements int    `json:"placements"`
	Passes     int    `json:"passes"`
	Winner     string `json:"winner"`
}

// Summary aggregates results
type Summary struct {
	Games         int     `json:"games"`
	DarkWins      int     `json:"dark_wins"`
	LightWins     int     `json:"light_wins"`
	Draws         int     `json:"draws"`
	Passes        int     `json:"passes"`
	AvgPlacements float64 `json:"avg_placements"`
}

// Simulator plays uniformly random legal moves
type Simulator struct {
	config *engine.GameConfig
	rng    *rand.Rand
	logger *zap.Logger
}

// NewSimulator creates a simulator. The same seed replays the same games.
func NewSimulator(config *engine.GameConfig, seed uint64, logger *zap.Logger) (*Simulator, error) {
	if config == nil {
		config = engine.DefaultConfig()
	}
	if err := engine.ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		config: config,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger: logger,
	}, nil
}

// Play plays the given opening moves in order, then random moves until the
// game is over.
func (s *Simulator) Play(opening ...string) (*Result, error) {
	eng, err := engine.NewEngine(s.config)
	if err != nil {
		return nil, err
	}

	for _, notation := range opening {
		if _, err := eng.PlaceNotation(notation); err != nil {
			return nil, fmt.Errorf("opening move %s: %w", notation, err)
		}
	}

	for !eng.IsGameOver() {
		moves := eng.LegalMoves()
		if len(moves) == 0 {
			return nil, fmt.Errorf("%s to move has no legal move but the game is not over", eng.Current())
		}
		if _, err := eng.Place(moves[s.rng.IntN(len(moves))]); err != nil {
			return nil, fmt.Errorf("legal move rejected: %w", err)
		}
		if eng.Placements() > engine.MaxPlacements {
			return nil, fmt.Errorf("%w: %d", ErrTooManyPlacements, eng.Placements())
		}
	}

	state := eng.GetState()
	return &Result{
		Dark:       state.Dark,
		Light:      state.Light,
		Placements: state.MoveCount,
		Passes:     len(state.History) - state.MoveCount,
		Winner:     state.Winner,
	}, nil
}

// Run plays games random games and returns their results in order
func (s *Simulator) Run(ctx context.Context, games int, opening ...string) ([]Result, error) {
	results := make([]Result, 0, games)
	for i := 1; i <= games; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := s.Play(opening...)
		if err != nil {
			return results, fmt.Errorf("game %d: %w", i, err)
		}
		result.Game = i
		results = append(results, *result)

		s.logger.Debug("playout finished",
			zap.Int("game", i),
			zap.String("winner", result.Winner),
			zap.Int("placements", result.Placements))
	}
	return results, nil
}

// Summarize totals a set of results
func Summarize(results []Result) Summary {
	summary := Summary{Games: len(results)}
	placements := 0
	for _, r := range results {
		switch r.Winner {
		case engine.Dark.String():
			summary.DarkWins++
		case engine.Light.String():
			summary.LightWins++
		default:
			summary.Draws++
		}
		summary.Passes += r.Passes
		placements += r.Placements
	}
	if len(results) > 0 {
		summary.AvgPlacements = float64(placements) / float64(len(results))
	}
	return summary
}
