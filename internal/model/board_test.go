package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCoordsAndToIndexAreInverses(t *testing.T) {
	for i := Index(0); i < CellCount; i++ {
		c := ToCoords(i)
		assert.True(t, c.InBounds(), "index %d", i)
		assert.Equal(t, i, ToIndex(c.X, c.Y), "index %d", i)
	}
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			assert.Equal(t, Coord{X: x, Y: y}, ToCoords(ToIndex(x, y)))
		}
	}
}

func TestToCoords(t *testing.T) {
	tests := []struct {
		index    Index
		expected Coord
	}{
		{0, Coord{0, 0}},
		{9, Coord{9, 0}},
		{10, Coord{0, 1}},
		{34, Coord{4, 3}},
		{99, Coord{9, 9}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ToCoords(tt.index))
	}
}

func TestIndexValid(t *testing.T) {
	assert.True(t, Index(0).Valid())
	assert.True(t, Index(99).Valid())
	assert.False(t, Index(-1).Valid())
	assert.False(t, Index(100).Valid())
}

func TestTotalShipCells(t *testing.T) {
	assert.Equal(t, 14, TotalShipCells)
}

func TestIndexSetSorted(t *testing.T) {
	s := NewIndexSet(42, 3, 17)
	s.Add(3, 8)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []Index{3, 8, 17, 42}, s.Sorted())
	assert.True(t, s.Contains(8))
	assert.False(t, s.Contains(9))
}

func TestPlacementCursor(t *testing.T) {
	c := NewPlacementCursor()
	assert.Equal(t, 2, c.ShipLength())
	assert.Equal(t, Horizontal, c.Orientation)

	c.ShipIdx = len(FleetSizes)
	assert.True(t, c.Done())
	assert.Equal(t, 0, c.ShipLength())
}

func TestShotRecordRemaining(t *testing.T) {
	r := NewShotRecord()
	r.Targets.Add(0, 50, 99)
	remaining := r.Remaining()
	assert.Len(t, remaining, CellCount-3)
	assert.NotContains(t, remaining, Index(50))
	assert.Equal(t, Index(1), remaining[0])
}
