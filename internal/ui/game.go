package ui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/game"
	"github.com/mcoot/battleship/internal/telemetry"
)

// Controller is the part of the game controller the terminal drives
type Controller interface {
	CreateGame(ctx context.Context, opts game.CreateOptions) (*model.Game, error)
	ToggleOrientation(ctx context.Context, id model.GameID) (*model.Game, error)
	PreviewPlacement(ctx context.Context, id model.GameID, index model.Index) (*model.Game, error)
	PlaceShip(ctx context.Context, id model.GameID, index model.Index) (*game.PlacementResult, error)
	FireAt(ctx context.Context, id model.GameID, index model.Index) (*game.ShotResult, error)
	EndGame(ctx context.Context, id model.GameID) error
}

// Game runs one game in the terminal.
type Game struct {
	screen     *Screen
	renderer   *Renderer
	controller Controller
	events     *Notifier
	strategy   string
	logger     *slog.Logger
	view       *View
	running    bool
}

// NewGame creates a terminal game over the given screen and controller.
// events must be the notifier the controller reports to.
func NewGame(screen *Screen, controller Controller, events *Notifier, strategy string, logger *slog.Logger) *Game {
	return &Game{
		screen:     screen,
		renderer:   NewRenderer(screen),
		controller: controller,
		events:     events,
		strategy:   strategy,
		logger:     logger.With(slog.String("component", "ui")),
		running:    true,
	}
}

// View returns the current presentation state
func (g *Game) View() *View {
	return g.view
}

// Run creates a game and executes the input loop until the player quits.
// The game is ended on return.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("ui")

	ctx, span := tracer.Start(ctx, "ui.new_game")
	created, err := g.controller.CreateGame(ctx, game.CreateOptions{Strategy: g.strategy})
	if err != nil {
		span.End()
		return err
	}
	span.SetAttributes(attribute.String("game.id", string(created.ID)))
	span.End()

	g.view = NewView(created)
	defer func() {
		if err := g.controller.EndGame(context.WithoutCancel(ctx), created.ID); err != nil {
			g.logger.Warn("failed to end game", slog.String("game_id", string(created.ID)), slog.String("error", err.Error()))
		}
	}()

	for g.running {
		g.renderer.Render(g.view)
		g.handleInput(ctx)
	}
	return nil
}

func (g *Game) applyEvents() {
	for _, event := range g.events.Drain() {
		g.view.Apply(event)
	}
}

// handleInput processes a single input event, then applies any game events
// it caused.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()
	defer g.applyEvents()

	switch ev := ev.(type) {
	case *WakeEvent:
		// Drained below
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.moveCursor(ctx, 0, -1)
	case tcell.KeyDown:
		g.moveCursor(ctx, 0, 1)
	case tcell.KeyLeft:
		g.moveCursor(ctx, -1, 0)
	case tcell.KeyRight:
		g.moveCursor(ctx, 1, 0)

	case tcell.KeyEnter:
		g.activate(ctx)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'r', 'R':
			g.rotate(ctx)
		case ' ':
			g.activate(ctx)
		}
	}
}

func (g *Game) moveCursor(ctx context.Context, dx, dy int) {
	g.view.MoveCursor(dx, dy)
	if g.view.Phase != model.PhasePlacement {
		return
	}
	snapshot, err := g.controller.PreviewPlacement(ctx, g.view.GameID, g.view.Cursor.Index())
	g.afterAction(snapshot, err)
}

func (g *Game) rotate(ctx context.Context) {
	snapshot, err := g.controller.ToggleOrientation(ctx, g.view.GameID)
	g.afterAction(snapshot, err)
}

// activate places a ship while placing and fires afterwards
func (g *Game) activate(ctx context.Context) {
	target := g.view.Cursor.Index()

	switch g.view.Phase {
	case model.PhasePlacement:
		result, err := g.controller.PlaceShip(ctx, g.view.GameID, target)
		if err != nil {
			g.afterAction(nil, err)
			return
		}
		g.afterAction(result.Game, nil)
	case model.PhaseActivePlay:
		result, err := g.controller.FireAt(ctx, g.view.GameID, target)
		if err != nil {
			g.afterAction(nil, err)
			return
		}
		g.afterAction(result.Game, nil)
	}
}

// afterAction records a rejection as a notice and keeps the phase in step
// with the controller's snapshot
func (g *Game) afterAction(snapshot *model.Game, err error) {
	if err != nil {
		g.view.Notice = noticeFor(err)
		return
	}
	g.view.Notice = ""
	if snapshot != nil {
		g.view.Phase = snapshot.Phase
	}
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidPlacement):
		return "Ship does not fit there."
	case errors.Is(err, model.ErrAlreadyTargeted):
		return "You already fired there."
	case errors.Is(err, model.ErrNotPlayerTurn):
		return "Wait for the computer."
	case errors.Is(err, model.ErrGameOver):
		return "The game is over. Press Q to quit."
	default:
		return err.Error()
	}
}
