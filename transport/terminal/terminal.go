// Package terminal runs a two-player game over line-based text streams.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/reversi/game/engine"
	"go.uber.org/zap"
)

// ErrInputClosed is returned when input ends before the game does
var ErrInputClosed = errors.New("input closed before the game ended")

// Game drives one engine from an input stream, writing to an output stream
type Game struct {
	engine *engine.GameEngine
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger

	announced int
}

// NewGame creates a terminal driver for eng
func NewGame(eng *engine.GameEngine, in io.Reader, out io.Writer, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		engine: eng,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run plays until the game is over, the input ends or ctx is cancelled
func (g *Game) Run(ctx context.Context) error {
	config := g.engine.GetConfig()

	for {
		g.announcePasses()

		if g.engine.IsGameOver() {
			g.printEnd()
			return nil
		}

		fmt.Fprint(g.out, g.engine.Render())
		fmt.Fprintf(g.out, "%s's turn\n", config.PlayerName(g.engine.Current()))

		if err := g.readMove(ctx); err != nil {
			return err
		}
	}
}

// readMove keeps prompting until a placement is accepted
func (g *Game) readMove(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !g.in.Scan() {
			if err := g.in.Err(); err != nil {
				return fmt.Errorf("failed to read move: %w", err)
			}
			return ErrInputClosed
		}

		line := strings.TrimSpace(g.in.Text())
		if line == "" {
			continue
		}

		outcome, err := g.engine.PlaceNotation(line)
		switch {
		case err == nil:
			g.logger.Debug("placement",
				zap.Stringer("color", outcome.Move.Color),
				zap.String("square", outcome.Move.Notation),
				zap.Int("flipped", len(outcome.Move.Flipped)))
			return nil
		case errors.Is(err, engine.ErrInvalidNotation):
			fmt.Fprintln(g.out, "invalid input")
		case errors.Is(err, engine.ErrIllegalMove):
			fmt.Fprintln(g.out, "illegal move")
		default:
			return err
		}
	}
}

// announcePasses prints one line per pass recorded since the last call
func (g *Game) announcePasses() {
	history := g.engine.GetMoveHistory()
	if g.announced > len(history) {
		g.announced = 0
	}
	for _, m := range history[g.announced:] {
		if m.Pass {
			fmt.Fprintln(g.out, "pass")
		}
	}
	g.announced = len(history)
}

func (g *Game) printEnd() {
	config := g.engine.GetConfig()
	dark, light := g.engine.Score()

	fmt.Fprint(g.out, g.engine.Render())
	fmt.Fprintf(g.out, "%s %d - %d %s\n", config.Players.Dark, dark, light, config.Players.Light)
	if winner, ok := g.engine.Winner(); ok {
		fmt.Fprintf(g.out, "%s wins\n", config.PlayerName(winner))
	} else {
		fmt.Fprintln(g.out, "draw")
	}
	fmt.Fprintln(g.out, "end")
}
