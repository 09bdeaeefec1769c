package fleet

import (
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/board"
)

// PlaceNext places the ship the cursor points at, with its origin at the
// given index. On success the ship is added to the fleet and the cursor
// advances; on failure neither is touched and the call may be retried.
func PlaceNext(f *model.Fleet, cursor *model.PlacementCursor, origin model.Index) (model.Ship, error) {
	if cursor.Done() {
		return model.Ship{}, model.ErrNotPlacementPhase
	}

	length := cursor.ShipLength()
	if err := board.ValidatePlacement(origin, length, cursor.Orientation, f.Cells); err != nil {
		return model.Ship{}, err
	}

	cells, _ := board.ShipCells(origin, length, cursor.Orientation)
	ship := model.Ship{
		Origin:      origin,
		Length:      length,
		Orientation: cursor.Orientation,
		Cells:       cells,
	}
	f.Add(ship)
	cursor.ShipIdx++
	return ship, nil
}

// Preview returns the cells to highlight for a candidate placement at origin.
// Nothing is previewed when the ship would leave the board; cells already
// holding a ship are skipped but overlap does not suppress the preview.
func Preview(f *model.Fleet, cursor model.PlacementCursor, origin model.Index) []model.Index {
	if cursor.Done() {
		return nil
	}
	cells, ok := board.ShipCells(origin, cursor.ShipLength(), cursor.Orientation)
	if !ok {
		return nil
	}
	out := make([]model.Index, 0, len(cells))
	for _, c := range cells {
		if !f.Cells.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}
