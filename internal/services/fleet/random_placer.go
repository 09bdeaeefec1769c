package fleet

import (
	"fmt"

	"github.com/mcoot/battleship/internal/dependencies/random"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/services/board"
)

// MaxPlacementAttempts bounds the rejection sampling for a single ship
const MaxPlacementAttempts = 10000

// RandomPlacer places a whole fleet by sampling uniform origins and orientations
type RandomPlacer struct {
	random      random.Random
	maxAttempts int
}

// NewRandomPlacer creates a RandomPlacer with the default attempt limit
func NewRandomPlacer(rnd random.Random) *RandomPlacer {
	return &RandomPlacer{random: rnd, maxAttempts: MaxPlacementAttempts}
}

// PlaceFleet fills f with one ship of every length in FleetSizes.
// For each length it keeps drawing an orientation and an origin until the
// placement is valid. f is left untouched if any ship cannot be placed.
func (p *RandomPlacer) PlaceFleet(f *model.Fleet) error {
	placed := model.NewFleet()
	for _, length := range model.FleetSizes {
		ship, err := p.placeShip(placed.Cells, length)
		if err != nil {
			return err
		}
		placed.Add(ship)
	}

	for _, ship := range placed.Ships {
		f.Add(ship)
	}
	return nil
}

func (p *RandomPlacer) placeShip(taken model.IndexSet, length int) (model.Ship, error) {
	for range p.maxAttempts {
		orientation := model.Horizontal
		if p.random.Intn(2) == 1 {
			orientation = model.Vertical
		}
		origin := model.Index(p.random.Intn(model.CellCount))

		if !board.IsValidPlacement(origin, length, orientation, taken) {
			continue
		}
		cells, _ := board.ShipCells(origin, length, orientation)
		return model.Ship{
			Origin:      origin,
			Length:      length,
			Orientation: orientation,
			Cells:       cells,
		}, nil
	}
	return model.Ship{}, fmt.Errorf("ship of length %d: %w", length, model.ErrFleetPlacementFailed)
}
