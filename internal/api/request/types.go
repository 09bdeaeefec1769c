package request

import (
	"errors"

	"github.com/mcoot/battleship/internal/model"
)

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Strategy string `json:"strategy,omitempty"`
}

// CellRequest names a board cell either by index or by x/y coordinates
type CellRequest struct {
	Index *int `json:"index,omitempty"`
	X     *int `json:"x,omitempty"`
	Y     *int `json:"y,omitempty"`
}

// Target resolves the request to a board index
func (r CellRequest) Target() (model.Index, error) {
	switch {
	case r.Index != nil && (r.X != nil || r.Y != nil):
		return 0, errors.New("give either index or x and y, not both")
	case r.Index != nil:
		idx := model.Index(*r.Index)
		if !idx.Valid() {
			return 0, model.ErrInvalidIndex
		}
		return idx, nil
	case r.X != nil && r.Y != nil:
		coord := model.Coord{X: *r.X, Y: *r.Y}
		if !coord.InBounds() {
			return 0, model.ErrInvalidIndex
		}
		return coord.Index(), nil
	default:
		return 0, errors.New("index or x and y is required")
	}
}
