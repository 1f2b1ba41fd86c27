// Command analyze prints quick, human-readable statistics about each legal
// first move. For every opening square it plays random games and reports how
// often each color wins and how often passes occur.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/wricardo/reversi/game/engine"
	"github.com/wricardo/reversi/game/playout"
)

// OpeningStats summarizes random playouts after one first move
type OpeningStats struct {
	Move    string
	Summary playout.Summary
}

func main() {
	if err := analyze(context.Background(), os.Stdout, 500, 1); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func analyze(ctx context.Context, out io.Writer, games int, seed uint64) error {
	stats, err := analyzeOpenings(ctx, engine.DefaultConfig(), games, seed)
	if err != nil {
		return err
	}

	for _, s := range stats {
		sum := s.Summary
		fmt.Fprintf(out, "\n=== Opening %s (%d games) ===\n", s.Move, sum.Games)
		fmt.Fprintf(out, "Dark wins:  %5.1f%%\n", percent(sum.DarkWins, sum.Games))
		fmt.Fprintf(out, "Light wins: %5.1f%%\n", percent(sum.LightWins, sum.Games))
		fmt.Fprintf(out, "Draws:      %5.1f%%\n", percent(sum.Draws, sum.Games))
		fmt.Fprintf(out, "Avg placements: %.1f, passes: %d\n", sum.AvgPlacements, sum.Passes)
		if sum.AvgPlacements < engine.MaxPlacements {
			fmt.Fprintf(out, "⚠️  %.1f squares left empty on average\n", engine.MaxPlacements-sum.AvgPlacements)
		}
	}
	return nil
}

// analyzeOpenings plays games random games after each legal first move
func analyzeOpenings(ctx context.Context, config *engine.GameConfig, games int, seed uint64) ([]OpeningStats, error) {
	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	var stats []OpeningStats
	for _, c := range eng.LegalMoves() {
		sim, err := playout.NewSimulator(config, seed, nil)
		if err != nil {
			return nil, err
		}
		results, err := sim.Run(ctx, games, c.String())
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", c, err)
		}
		stats = append(stats, OpeningStats{Move: c.String(), Summary: playout.Summarize(results)})
	}
	return stats, nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
