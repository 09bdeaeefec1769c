package board

import (
	"github.com/mcoot/battleship/internal/model"
)

// ShipCells returns the cells a ship of the given length would occupy when
// placed at origin. ok is false if any part of the ship leaves the board.
// Ships run along a single row or column and never wrap.
func ShipCells(origin model.Index, length int, orientation model.Orientation) (cells []model.Index, ok bool) {
	if !origin.Valid() || length <= 0 || !orientation.Valid() {
		return nil, false
	}

	start := model.ToCoords(origin)
	if orientation == model.Horizontal && start.X+length > model.BoardSize {
		return nil, false
	}
	if orientation == model.Vertical && start.Y+length > model.BoardSize {
		return nil, false
	}

	cells = make([]model.Index, length)
	for i := 0; i < length; i++ {
		x, y := start.X, start.Y
		if orientation == model.Horizontal {
			x += i
		} else {
			y += i
		}
		cells[i] = model.ToIndex(x, y)
	}
	return cells, true
}

// IsValidPlacement reports whether a ship fits on the board without touching
// any index in taken. It has no side effects.
func IsValidPlacement(origin model.Index, length int, orientation model.Orientation, taken model.IndexSet) bool {
	cells, ok := ShipCells(origin, length, orientation)
	if !ok {
		return false
	}
	for _, c := range cells {
		if taken.Contains(c) {
			return false
		}
	}
	return true
}

// ValidatePlacement is IsValidPlacement with an error result
func ValidatePlacement(origin model.Index, length int, orientation model.Orientation, taken model.IndexSet) error {
	if !origin.Valid() {
		return model.ErrInvalidIndex
	}
	if !IsValidPlacement(origin, length, orientation, taken) {
		return model.ErrInvalidPlacement
	}
	return nil
}
