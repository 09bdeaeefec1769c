package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/battleship/internal/dependencies/clock"
	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/dependencies/scheduler"
	"github.com/mcoot/battleship/internal/notify"
	"github.com/mcoot/battleship/internal/services/fleet"
	"github.com/mcoot/battleship/internal/services/game"
	"github.com/mcoot/battleship/internal/services/opponent"
	"github.com/mcoot/battleship/internal/sse"
	"github.com/mcoot/battleship/internal/storage"
	"github.com/mcoot/battleship/internal/storage/memory"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Scheduler scheduler.Scheduler

	// Services
	GameController *game.Controller
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// ReplyDelay is the pause before the computer answers a shot
	// If zero, game.DefaultReplyDelay is used
	ReplyDelay time.Duration
	// Seed makes the computer's fleet and shots reproducible (optional)
	Seed *uint64
	// Notifiers receive game events alongside the SSE broadcaster (optional)
	Notifiers []notify.Notifier
}

// New creates a new application with all dependencies wired
func New(cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	replyDelay := cfg.ReplyDelay
	if replyDelay == 0 {
		replyDelay = game.DefaultReplyDelay
	}

	var rnd random.Random = random.New()
	if cfg.Seed != nil {
		rnd = random.NewSeeded(*cfg.Seed)
	}

	return newWithDependencies(memory.New(), clock.New(), rnd, scheduler.New(), cfg.Notifiers, replyDelay, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sched scheduler.Scheduler,
	extra []notify.Notifier,
	replyDelay time.Duration,
	logger *slog.Logger,
) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	notifiers := notify.Multi{broadcaster}
	notifiers = append(notifiers, extra...)

	gameController := game.NewController(
		store,
		opponent.NewRegistry(rnd),
		fleet.NewRandomPlacer(rnd),
		clk,
		rnd,
		sched,
		notifiers,
		logger,
		replyDelay,
	)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Scheduler:      sched,
		GameController: gameController,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
	}
}
