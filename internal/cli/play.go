package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship/internal/factory"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/notify"
	"github.com/mcoot/battleship/internal/ui"
)

func newPlayCmd() *cobra.Command {
	var (
		strategy   string
		replyDelay time.Duration
		seed       uint64
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Play a game against the computer in this terminal. No server is needed.

Place your ships with the arrow keys and Enter, R rotates the next ship.
Once your fleet is placed, move over the computer's board and press Enter
to fire. Q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := playLogger(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			screen, err := ui.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			defer screen.Close()

			events := ui.NewNotifier(screen, logger)
			appCfg := factory.Config{
				Logger:     logger,
				ReplyDelay: replyDelay,
				Notifiers:  []notify.Notifier{events},
			}
			if cmd.Flags().Changed("seed") {
				appCfg.Seed = &seed
			}
			app := factory.New(appCfg)
			defer app.HubManager.Close()

			return ui.NewGame(screen, app.GameController, events, strategy, logger).Run(context.Background())
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", model.StrategyRandom, strategyUsage())
	cmd.Flags().DurationVar(&replyDelay, "reply-delay", 0, "Pause before the computer replies (default 700ms)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible computer fleet and shots")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")

	return cmd
}

// playLogger logs to a file when asked; the terminal belongs to the game
func playLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
