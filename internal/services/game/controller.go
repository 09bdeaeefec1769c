package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcoot/battleship/internal/dependencies/clock"
	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/dependencies/scheduler"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/notify"
	"github.com/mcoot/battleship/internal/services/board"
	"github.com/mcoot/battleship/internal/services/fleet"
	"github.com/mcoot/battleship/internal/services/opponent"
	"github.com/mcoot/battleship/internal/services/shot"
	"github.com/mcoot/battleship/internal/storage"
	"github.com/mcoot/battleship/internal/telemetry"
)

const (
	// GameIDAlphabet is the character set for generated game IDs
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// GameIDLength is the length of generated game IDs
	GameIDLength = 12
	// DefaultReplyDelay is the pause before the opponent answers a human shot
	DefaultReplyDelay = 700 * time.Millisecond
)

// Status messages shown to the human
const (
	StatusPlaceShip      = "Place ship of size %d (%s). Press R to rotate."
	StatusAllPlaced      = "All ships placed! Your turn."
	StatusHit            = "Hit!"
	StatusMiss           = "Miss!"
	StatusOpponentHit    = "Computer hit your ship!"
	StatusOpponentMissed = "Computer missed."
	StatusPlayerWins     = "You win!"
	StatusOpponentWins   = "Computer wins!"
)

// CreateOptions configures a new game
type CreateOptions struct {
	Strategy string
}

// PlacementResult describes a successful interactive placement
type PlacementResult struct {
	Ship     model.Ship
	Complete bool // The human fleet is complete and play has started
	Game     *model.Game
}

// ShotResult describes a resolved shot
type ShotResult struct {
	Attacker model.Side
	Target   model.Index
	Outcome  model.ShotOutcome
	Hits     int
	Winner   model.Side
	Game     *model.Game
}

// pendingReply is an outstanding scheduled opponent turn
type pendingReply struct {
	task scheduler.Task
	seq  uint64
}

// Controller manages the game state machine and turn flow.
// All session mutation happens under a single mutex, including the
// scheduled opponent reply, so there is exactly one mutator at a time.
// Games returned to callers are copies.
type Controller struct {
	storage    storage.Storage
	strategies opponent.Registry
	placer     *fleet.RandomPlacer
	clock      clock.Clock
	random     random.Random
	scheduler  scheduler.Scheduler
	notifier   notify.Notifier
	tracer     trace.Tracer
	logger     *slog.Logger
	replyDelay time.Duration

	mu      sync.Mutex
	pending map[model.GameID]pendingReply
	seq     uint64
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	strategies opponent.Registry,
	placer *fleet.RandomPlacer,
	clock clock.Clock,
	random random.Random,
	scheduler scheduler.Scheduler,
	notifier notify.Notifier,
	logger *slog.Logger,
	replyDelay time.Duration,
) *Controller {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if replyDelay < 0 {
		replyDelay = 0
	}
	return &Controller{
		storage:    storage,
		strategies: strategies,
		placer:     placer,
		clock:      clock,
		random:     random,
		scheduler:  scheduler,
		notifier:   notifier,
		tracer:     telemetry.Tracer("game"),
		logger:     logger.With(slog.String("component", "game")),
		replyDelay: replyDelay,
		pending:    make(map[model.GameID]pendingReply),
	}
}

// ReplyDelay returns the configured opponent reply delay
func (c *Controller) ReplyDelay() time.Duration {
	return c.replyDelay
}

// CreateGame starts a new session in the placement phase
func (c *Controller) CreateGame(ctx context.Context, opts CreateOptions) (*model.Game, error) {
	strategy := opts.Strategy
	if strategy == "" {
		strategy = model.StrategyRandom
	}
	if _, err := c.strategies.Get(strategy); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	id := model.GameID(c.random.String(GameIDLength, GameIDAlphabet))
	game := model.NewGame(id, strategy, now)

	c.setStatus(ctx, game, placementStatus(game.Cursor))
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(id)),
		slog.String("strategy", strategy),
	)

	return game.Clone(), nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return game.Clone(), nil
}

// ListGames returns every live game
func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Game, len(games))
	for i, g := range games {
		out[i] = g.Clone()
	}
	return out, nil
}

// ToggleOrientation flips the orientation of the next ship to place and
// refreshes any preview in progress
func (c *Controller) ToggleOrientation(ctx context.Context, id model.GameID) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.placementGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Cursor.Orientation = game.Cursor.Orientation.Toggle()
	if game.PreviewOrigin != nil {
		c.showPreview(ctx, game, *game.PreviewOrigin)
	}
	c.setStatus(ctx, game, placementStatus(game.Cursor))

	if err := c.save(ctx, game); err != nil {
		return nil, err
	}
	return game.Clone(), nil
}

// PreviewPlacement highlights where the next ship would sit with its origin at index
func (c *Controller) PreviewPlacement(ctx context.Context, id model.GameID, index model.Index) (*model.Game, error) {
	if !index.Valid() {
		return nil, model.ErrInvalidIndex
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.placementGame(ctx, id)
	if err != nil {
		return nil, err
	}

	c.showPreview(ctx, game, index)
	if err := c.save(ctx, game); err != nil {
		return nil, err
	}
	return game.Clone(), nil
}

// ClearPreview removes the current preview, if any
func (c *Controller) ClearPreview(ctx context.Context, id model.GameID) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	c.clearPreview(ctx, game)
	if err := c.save(ctx, game); err != nil {
		return nil, err
	}
	return game.Clone(), nil
}

// PlaceShip places the human's next ship with its origin at index.
// Placing the last ship places the opponent fleet and starts play.
func (c *Controller) PlaceShip(ctx context.Context, id model.GameID, index model.Index) (*PlacementResult, error) {
	ctx, span := c.tracer.Start(ctx, "game.place_ship", trace.WithAttributes(
		attribute.String("game.id", string(id)),
		attribute.Int("game.index", int(index)),
	))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.placementGame(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}

	playerFleet := game.Fleets[model.SidePlayer]
	length := game.Cursor.ShipLength()
	if err := board.ValidatePlacement(index, length, game.Cursor.Orientation, playerFleet.Cells); err != nil {
		return nil, recordError(span, err)
	}

	// The opponent fleet is built before anything is applied so a failure
	// leaves the session untouched
	lastShip := game.Cursor.ShipIdx == len(model.FleetSizes)-1
	var opponentFleet *model.Fleet
	if lastShip {
		opponentFleet = model.NewFleet()
		if err := c.placer.PlaceFleet(opponentFleet); err != nil {
			c.logger.Error("opponent fleet placement failed",
				slog.String("game_id", string(id)),
				slog.String("error", err.Error()),
			)
			return nil, recordError(span, err)
		}
	}

	ship, err := fleet.PlaceNext(playerFleet, &game.Cursor, index)
	if err != nil {
		return nil, recordError(span, err)
	}

	c.clearPreview(ctx, game)
	for _, cell := range ship.Cells {
		c.emitCell(ctx, game, model.EventShipMarked, model.SidePlayer, cell)
	}

	c.logger.Debug("ship placed",
		slog.String("game_id", string(id)),
		slog.Int("index", int(index)),
		slog.Int("length", ship.Length),
		slog.String("orientation", string(ship.Orientation)),
	)

	if lastShip {
		game.Fleets[model.SideOpponent] = opponentFleet
		game.Shots[model.SidePlayer] = model.NewShotRecord()
		game.Shots[model.SideOpponent] = model.NewShotRecord()
		game.Turn = model.SidePlayer
		c.setPhase(ctx, game, model.PhaseActivePlay)
		c.setStatus(ctx, game, StatusAllPlaced)

		c.logger.Info("play started", slog.String("game_id", string(id)))
	} else {
		c.setStatus(ctx, game, placementStatus(game.Cursor))
	}

	if err := c.save(ctx, game); err != nil {
		return nil, recordError(span, err)
	}

	return &PlacementResult{
		Ship:     ship,
		Complete: lastShip,
		Game:     game.Clone(),
	}, nil
}

// FireAt resolves a human shot at the opponent board. If play continues
// the opponent reply is scheduled after the reply delay, and no further
// human shot is accepted until it has resolved.
func (c *Controller) FireAt(ctx context.Context, id model.GameID, index model.Index) (*ShotResult, error) {
	ctx, span := c.tracer.Start(ctx, "game.fire", trace.WithAttributes(
		attribute.String("game.id", string(id)),
		attribute.Int("game.index", int(index)),
	))
	defer span.End()

	if !index.Valid() {
		return nil, recordError(span, model.ErrInvalidIndex)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}

	switch {
	case game.Phase == model.PhasePlacement:
		return nil, recordError(span, model.ErrPlacementInProgress)
	case game.IsOver():
		return nil, recordError(span, model.ErrGameOver)
	case game.Turn != model.SidePlayer:
		return nil, recordError(span, model.ErrNotPlayerTurn)
	}

	result, err := c.resolveShot(ctx, game, model.SidePlayer, index)
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.String("game.outcome", string(result.Outcome)))

	if !game.IsOver() {
		game.Turn = model.SideOpponent
		c.scheduleReply(id)
	}

	if err := c.save(ctx, game); err != nil {
		return nil, recordError(span, err)
	}

	result.Game = game.Clone()
	return result, nil
}

// PlayOpponentTurn resolves the opponent's reply. It is what the scheduled
// reply runs, and may be called directly to resolve a pending reply early.
func (c *Controller) PlayOpponentTurn(ctx context.Context, id model.GameID) (*ShotResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.pending[id]; ok {
		p.task.Cancel()
		delete(c.pending, id)
	}
	return c.playOpponentTurn(ctx, id)
}

// EndGame tears down a session, cancelling any pending reply
func (c *Controller) EndGame(ctx context.Context, id model.GameID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.storage.GetGame(ctx, id); err != nil {
		return err
	}

	if p, ok := c.pending[id]; ok {
		p.task.Cancel()
		delete(c.pending, id)
	}

	if err := c.storage.DeleteGame(ctx, id); err != nil {
		return err
	}

	c.logger.Info("game ended", slog.String("game_id", string(id)))
	return nil
}

// playOpponentTurn must be called with c.mu held
func (c *Controller) playOpponentTurn(ctx context.Context, id model.GameID) (*ShotResult, error) {
	ctx, span := c.tracer.Start(ctx, "game.opponent_turn", trace.WithAttributes(
		attribute.String("game.id", string(id)),
	))
	defer span.End()

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}
	if game.IsOver() {
		return nil, recordError(span, model.ErrGameOver)
	}
	if !game.ReplyPending() {
		return nil, recordError(span, model.ErrNotOpponentTurn)
	}

	strategy, err := c.strategies.Get(game.OpponentStrategy)
	if err != nil {
		return nil, recordError(span, err)
	}
	target, err := strategy.ChooseTarget(game.Shots[model.SideOpponent])
	if err != nil {
		return nil, recordError(span, err)
	}

	result, err := c.resolveShot(ctx, game, model.SideOpponent, target)
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(
		attribute.Int("game.index", int(target)),
		attribute.String("game.outcome", string(result.Outcome)),
	)

	if !game.IsOver() {
		game.Turn = model.SidePlayer
	}

	if err := c.save(ctx, game); err != nil {
		return nil, recordError(span, err)
	}

	result.Game = game.Clone()
	return result, nil
}

// scheduleReply must be called with c.mu held
func (c *Controller) scheduleReply(id model.GameID) {
	if p, ok := c.pending[id]; ok {
		p.task.Cancel()
	}
	c.seq++
	seq := c.seq
	task := c.scheduler.AfterFunc(c.replyDelay, func() {
		c.runScheduledReply(id, seq)
	})
	c.pending[id] = pendingReply{task: task, seq: seq}
}

func (c *Controller) runScheduledReply(id model.GameID, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A reply that lost a race with cancellation must not run
	p, ok := c.pending[id]
	if !ok || p.seq != seq {
		return
	}
	delete(c.pending, id)

	if _, err := c.playOpponentTurn(context.Background(), id); err != nil {
		c.logger.Warn("scheduled opponent turn failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
}

// resolveShot applies one shot for attacker and runs the victory check
func (c *Controller) resolveShot(ctx context.Context, game *model.Game, attacker model.Side, target model.Index) (*ShotResult, error) {
	defender := attacker.Other()
	outcome, err := shot.Resolve(game.Shots[attacker], game.Fleets[defender], target)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game.History = append(game.History, model.Shot{
		Attacker: attacker,
		Target:   target,
		Outcome:  outcome,
		At:       now,
	})

	eventType := model.EventMiss
	if outcome == model.OutcomeHit {
		eventType = model.EventHit
	}
	c.emitCell(ctx, game, eventType, defender, target)
	c.setStatus(ctx, game, shotStatus(attacker, outcome))

	c.logger.Debug("shot resolved",
		slog.String("game_id", string(game.ID)),
		slog.String("attacker", string(attacker)),
		slog.Int("index", int(target)),
		slog.String("outcome", string(outcome)),
		slog.Int("hits", game.HitsFor(attacker)),
	)

	c.checkVictory(ctx, game, attacker)

	return &ShotResult{
		Attacker: attacker,
		Target:   target,
		Outcome:  outcome,
		Hits:     game.HitsFor(attacker),
		Winner:   game.Winner,
	}, nil
}

// placementGame loads a game and checks it is still in placement
func (c *Controller) placementGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.IsOver() {
		return nil, model.ErrGameOver
	}
	if game.Phase != model.PhasePlacement {
		return nil, model.ErrNotPlacementPhase
	}
	return game, nil
}

func (c *Controller) showPreview(ctx context.Context, game *model.Game, origin model.Index) {
	c.clearPreview(ctx, game)
	cells := fleet.Preview(game.Fleets[model.SidePlayer], game.Cursor, origin)
	game.PreviewOrigin = &origin
	game.PreviewCells = cells
	for _, cell := range cells {
		c.emitCell(ctx, game, model.EventPreviewOn, model.SidePlayer, cell)
	}
}

func (c *Controller) clearPreview(ctx context.Context, game *model.Game) {
	for _, cell := range game.PreviewCells {
		c.emitCell(ctx, game, model.EventPreviewOff, model.SidePlayer, cell)
	}
	game.PreviewOrigin = nil
	game.PreviewCells = nil
}

func (c *Controller) setStatus(ctx context.Context, game *model.Game, message string) {
	game.Status = message
	c.notifier.Notify(ctx, model.Event{
		Type:      model.EventStatus,
		GameID:    game.ID,
		Message:   message,
		Phase:     game.Phase,
		Timestamp: c.clock.Now(),
	})
}

func (c *Controller) setPhase(ctx context.Context, game *model.Game, phase model.Phase) {
	game.Phase = phase
	c.notifier.Notify(ctx, model.Event{
		Type:      model.EventPhaseChanged,
		GameID:    game.ID,
		Phase:     phase,
		Timestamp: c.clock.Now(),
	})
}

func (c *Controller) emitCell(ctx context.Context, game *model.Game, eventType model.EventType, boardSide model.Side, index model.Index) {
	c.notifier.Notify(ctx, model.Event{
		Type:      eventType,
		GameID:    game.ID,
		Board:     boardSide,
		Index:     index,
		Phase:     game.Phase,
		Timestamp: c.clock.Now(),
	})
}

func (c *Controller) save(ctx context.Context, game *model.Game) error {
	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func placementStatus(cursor model.PlacementCursor) string {
	return fmt.Sprintf(StatusPlaceShip, cursor.ShipLength(), cursor.Orientation)
}

func shotStatus(attacker model.Side, outcome model.ShotOutcome) string {
	switch {
	case attacker == model.SidePlayer && outcome == model.OutcomeHit:
		return StatusHit
	case attacker == model.SidePlayer:
		return StatusMiss
	case outcome == model.OutcomeHit:
		return StatusOpponentHit
	default:
		return StatusOpponentMissed
	}
}

// recordError marks the span failed for unexpected errors. Rejected moves
// are expected and only annotate the span.
func recordError(span trace.Span, err error) error {
	if isRejection(err) {
		span.SetAttributes(attribute.String("game.rejected", err.Error()))
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func isRejection(err error) bool {
	for _, target := range []error{
		model.ErrGameNotFound,
		model.ErrInvalidIndex,
		model.ErrInvalidPlacement,
		model.ErrNotPlacementPhase,
		model.ErrPlacementInProgress,
		model.ErrNotPlayerTurn,
		model.ErrNotOpponentTurn,
		model.ErrAlreadyTargeted,
		model.ErrGameOver,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
