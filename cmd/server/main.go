package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/battleship/internal/api"
	"github.com/mcoot/battleship/internal/factory"
	"github.com/mcoot/battleship/internal/telemetry"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env file for local development; env vars may be set directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Warn("telemetry setup failed, running without tracing", slog.String("error", err.Error()))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error("telemetry shutdown error", slog.String("error", err.Error()))
				}
			}()
		}
	}

	// Build factory config from environment
	cfg := factory.Config{Logger: logger}
	if v := os.Getenv("BATTLESHIP_REPLY_DELAY"); v != "" {
		delay, err := time.ParseDuration(v)
		if err != nil {
			logger.Error("invalid BATTLESHIP_REPLY_DELAY", slog.String("value", v))
			os.Exit(1)
		}
		cfg.ReplyDelay = delay
	}
	if v := os.Getenv("BATTLESHIP_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			logger.Error("invalid BATTLESHIP_SEED", slog.String("value", v))
			os.Exit(1)
		}
		cfg.Seed = &seed
	}

	app := factory.New(cfg)
	defer app.HubManager.Close()
	go cleanupHubs(ctx, app, logger)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		HubManager:     app.HubManager,
	})

	serverConfig := api.DefaultServerConfig()
	if host := os.Getenv("BATTLESHIP_ADDR_HOST"); host != "" {
		serverConfig.Host = host
	}
	if v := os.Getenv("BATTLESHIP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			logger.Error("invalid BATTLESHIP_PORT", slog.String("value", v))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.Duration("reply_delay", app.GameController.ReplyDelay()),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// cleanupHubs drops event hubs whose listeners have all gone
func cleanupHubs(ctx context.Context, app *factory.App, logger *slog.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.HubManager.CleanupEmptyHubs(); n > 0 {
				logger.Debug("removed idle event hubs", slog.Int("count", n))
			}
		}
	}
}
