// Command reversi plays two-player Reversi.
//
// It supports these modes:
//  1. "play" (default) – two players share the terminal, entering squares like d3
//  2. "simulate" – plays random legal games and reports the results
//  3. "mcp" – runs an MCP stdio server so AI agents can play sessions
//  4. "themes" – lists the themes found in the config directory
//
// Flags control the config directory, the theme and debug logging.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/reversi/game/config"
	"github.com/wricardo/reversi/game/playout"
	"github.com/wricardo/reversi/game/service"
	"github.com/wricardo/reversi/game/session"
	"github.com/wricardo/reversi/transport/mcp"
	"github.com/wricardo/reversi/transport/terminal"
	"go.uber.org/zap"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "reversi"
)

const (
	sessionCleanupInterval = time.Hour
	defaultSessionTTL      = 24 * time.Hour
)

// main loads .env, builds the command tree and runs it until done or interrupted.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdin, os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. in and out are used by the interactive and
// reporting subcommands.
func newRootCommand(in io.Reader, out io.Writer) *cli.Command {
	play := func(ctx context.Context, cmd *cli.Command) error {
		return runPlay(ctx, cmd, in, out)
	}

	return &cli.Command{
		Name:    AppName,
		Usage:   "two-player Reversi",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing theme files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "theme",
				Value:   config.DefaultName,
				Usage:   "theme to play with",
				Sources: cli.EnvVars("REVERSI_THEME"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play a game in the terminal",
				Action: play,
			},
			{
				Name:  "simulate",
				Usage: "play random legal games",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "games", Value: 100, Usage: "number of games"},
					&cli.IntFlag{Name: "seed", Value: 1, Usage: "random seed"},
					&cli.BoolFlag{Name: "json", Usage: "print results as JSON"},
					&cli.BoolFlag{Name: "verbose", Usage: "print every game"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSimulate(ctx, cmd, out)
				},
			},
			{
				Name:  "mcp",
				Usage: "run an MCP stdio server",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "session-ttl", Value: defaultSessionTTL, Usage: "remove sessions idle for longer than this"},
				},
				Action: runMCP,
			},
			{
				Name:  "themes",
				Usage: "list available themes",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runThemes(ctx, cmd, out)
				},
			},
		},
	}
}

// newLogger builds a development logger under --debug and a production one otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// setup creates the logger and theme manager shared by every subcommand.
func setup(cmd *cli.Command) (*zap.Logger, *config.Manager, error) {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	configManager, err := config.NewManager(cmd.String("config-dir"), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	if err := configManager.SetDefault(cmd.String("theme")); err != nil {
		return nil, nil, fmt.Errorf("failed to load theme %s: %w", cmd.String("theme"), err)
	}

	return logger, configManager, nil
}

func runPlay(ctx context.Context, cmd *cli.Command, in io.Reader, out io.Writer) error {
	logger, configManager, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sessionManager := session.NewManager(logger)
	sess, err := sessionManager.Create("", configManager.GetDefault())
	if err != nil {
		return err
	}

	logger.Debug("starting terminal game", zap.String("session", sess.ID), zap.String("theme", sess.Config.Name))
	return terminal.NewGame(sess.Engine, in, out, logger).Run(ctx)
}

func runSimulate(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	logger, configManager, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	games := int(cmd.Int("games"))
	if games <= 0 {
		return errors.New("--games must be positive")
	}

	sim, err := playout.NewSimulator(configManager.GetDefault(), uint64(cmd.Int("seed")), logger)
	if err != nil {
		return err
	}

	results, err := sim.Run(ctx, games)
	if err != nil {
		return err
	}
	summary := playout.Summarize(results)

	if cmd.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		payload := map[string]interface{}{"summary": summary}
		if cmd.Bool("verbose") {
			payload["games"] = results
		}
		return enc.Encode(payload)
	}

	if cmd.Bool("verbose") {
		for _, r := range results {
			fmt.Fprintf(out, "game %d: dark %d, light %d, %s (%d placements, %d passes)\n",
				r.Game, r.Dark, r.Light, r.Winner, r.Placements, r.Passes)
		}
	}
	fmt.Fprintf(out, "%d games: dark %d, light %d, draws %d, avg placements %.1f, passes %d\n",
		summary.Games, summary.DarkWins, summary.LightWins, summary.Draws, summary.AvgPlacements, summary.Passes)
	return nil
}

func runMCP(ctx context.Context, cmd *cli.Command) error {
	logger, configManager, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sessionManager := session.NewManager(logger)
	gameService := service.NewGameService(sessionManager, configManager, logger)

	go sessionCleanupRoutine(ctx, sessionManager, cmd.Duration("session-ttl"))

	logger.Info("starting MCP stdio server", zap.String("version", Version))
	return mcp.NewServer(gameService, logger).ServeStdio()
}

func runThemes(ctx context.Context, cmd *cli.Command, out io.Writer) error {
	logger, configManager, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	themes, err := configManager.ListConfigs()
	if err != nil {
		return err
	}

	for _, theme := range themes {
		source := theme.Filename
		if source == "" {
			source = "built-in"
		}
		fmt.Fprintf(out, "%-10s %-8s %s (%s)\n", theme.ConfigID, theme.FirstPlayer, theme.Description, source)
	}
	return nil
}

// sessionCleanupRoutine removes idle sessions until ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, maxAge time.Duration) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			manager.CleanupExpiredSessions(maxAge)
		}
	}
}
