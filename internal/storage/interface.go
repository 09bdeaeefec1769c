package storage

import (
	"context"

	"github.com/mcoot/battleship/internal/model"
)

// Storage defines the interface for holding game sessions
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGames(ctx context.Context) ([]*model.Game, error)
}
