package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship/internal/model"
)

type ValidatorSuite struct {
	suite.Suite
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

// ShipCells tests

func (s *ValidatorSuite) TestShipCellsHorizontal() {
	cells, ok := ShipCells(model.ToIndex(2, 3), 4, model.Horizontal)
	s.Require().True(ok)
	s.Equal([]model.Index{32, 33, 34, 35}, cells)
}

func (s *ValidatorSuite) TestShipCellsVertical() {
	cells, ok := ShipCells(model.ToIndex(7, 1), 3, model.Vertical)
	s.Require().True(ok)
	s.Equal([]model.Index{17, 27, 37}, cells)
}

func (s *ValidatorSuite) TestShipCellsDoesNotWrap() {
	_, ok := ShipCells(model.ToIndex(8, 0), 3, model.Horizontal)
	s.False(ok)

	_, ok = ShipCells(model.ToIndex(0, 8), 3, model.Vertical)
	s.False(ok)
}

func (s *ValidatorSuite) TestShipCellsRejectsBadInput() {
	_, ok := ShipCells(-1, 2, model.Horizontal)
	s.False(ok)
	_, ok = ShipCells(100, 2, model.Horizontal)
	s.False(ok)
	_, ok = ShipCells(0, 0, model.Horizontal)
	s.False(ok)
	_, ok = ShipCells(0, 2, model.Orientation("diagonal"))
	s.False(ok)
}

// IsValidPlacement tests

func (s *ValidatorSuite) TestFitsOnEmptyBoard() {
	empty := model.NewIndexSet()
	for i := model.Index(0); i < model.CellCount; i++ {
		c := model.ToCoords(i)
		for _, length := range model.FleetSizes {
			s.Equal(c.X+length <= model.BoardSize, IsValidPlacement(i, length, model.Horizontal, empty), "h %d len %d", i, length)
			s.Equal(c.Y+length <= model.BoardSize, IsValidPlacement(i, length, model.Vertical, empty), "v %d len %d", i, length)
		}
	}
}

func (s *ValidatorSuite) TestRejectsOverlap() {
	taken := model.NewIndexSet(22)
	s.False(IsValidPlacement(20, 3, model.Horizontal, taken))
	s.False(IsValidPlacement(2, 3, model.Vertical, taken))
	s.True(IsValidPlacement(23, 3, model.Horizontal, taken))
	s.True(IsValidPlacement(12, 3, model.Horizontal, taken))
}

func (s *ValidatorSuite) TestEveryOverlappingCellRejects() {
	cells, _ := ShipCells(44, 5, model.Horizontal)
	for _, c := range cells {
		s.False(IsValidPlacement(44, 5, model.Horizontal, model.NewIndexSet(c)), "cell %d", c)
	}
}

func (s *ValidatorSuite) TestFullLengthOnlyFitsFromEdge() {
	empty := model.NewIndexSet()
	s.True(IsValidPlacement(model.ToIndex(0, 5), model.BoardSize, model.Horizontal, empty))
	s.False(IsValidPlacement(model.ToIndex(1, 5), model.BoardSize, model.Horizontal, empty))
	s.True(IsValidPlacement(model.ToIndex(5, 0), model.BoardSize, model.Vertical, empty))
	s.False(IsValidPlacement(model.ToIndex(5, 1), model.BoardSize, model.Vertical, empty))
	s.False(IsValidPlacement(0, model.BoardSize+1, model.Horizontal, empty))
}

// ValidatePlacement tests

func (s *ValidatorSuite) TestValidatePlacementErrors() {
	s.ErrorIs(ValidatePlacement(100, 2, model.Horizontal, model.NewIndexSet()), model.ErrInvalidIndex)
	s.ErrorIs(ValidatePlacement(9, 2, model.Horizontal, model.NewIndexSet()), model.ErrInvalidPlacement)
	s.NoError(ValidatePlacement(8, 2, model.Horizontal, model.NewIndexSet()))
}
