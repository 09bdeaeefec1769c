package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/battleship/internal/model"
)

// HasWon reports whether attacker has hit every ship cell of the other side
func HasWon(game *model.Game, attacker model.Side) bool {
	return game.HitsFor(attacker) >= model.TotalShipCells
}

// checkVictory runs after every resolved shot. Only the side that just
// fired is checked, so at most one winner can ever be declared.
func (c *Controller) checkVictory(ctx context.Context, game *model.Game, attacker model.Side) bool {
	if game.IsOver() || !HasWon(game, attacker) {
		return false
	}

	game.Winner = attacker
	c.setPhase(ctx, game, model.PhaseGameOver)
	if attacker == model.SidePlayer {
		c.setStatus(ctx, game, StatusPlayerWins)
	} else {
		c.setStatus(ctx, game, StatusOpponentWins)
	}
	c.notifier.Notify(ctx, model.Event{
		Type:      model.EventInputDisabled,
		GameID:    game.ID,
		Board:     model.SideOpponent,
		Phase:     game.Phase,
		Timestamp: c.clock.Now(),
	})

	c.logger.Info("game over",
		slog.String("game_id", string(game.ID)),
		slog.String("winner", string(attacker)),
		slog.Int("shots", len(game.History)),
	)
	return true
}
