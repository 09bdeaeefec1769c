package model

import (
	"slices"
)

// Fixed game parameters
const (
	// BoardSize is the dimension of each square board
	BoardSize = 10
	// CellCount is the number of cells on a board
	CellCount = BoardSize * BoardSize
)

// FleetSizes is the sequence of ship lengths each side places, in order
var FleetSizes = []int{2, 3, 4, 5}

// TotalShipCells is the number of ship cells in a completed fleet
var TotalShipCells = sumSizes(FleetSizes)

func sumSizes(sizes []int) int {
	total := 0
	for _, s := range sizes {
		total += s
	}
	return total
}

// Index is a linear cell index in [0, CellCount)
type Index int

// Valid returns true if the index addresses a cell on the board
func (i Index) Valid() bool {
	return i >= 0 && i < CellCount
}

// Coord is an (x, y) grid position; x is the column, y the row
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToCoords converts a linear index to grid coordinates
func ToCoords(i Index) Coord {
	return Coord{X: int(i) % BoardSize, Y: int(i) / BoardSize}
}

// ToIndex converts grid coordinates to a linear index
func ToIndex(x, y int) Index {
	return Index(y*BoardSize + x)
}

// InBounds returns true if the coordinate lies on the board
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < BoardSize && c.Y >= 0 && c.Y < BoardSize
}

// Index returns the linear index of the coordinate
func (c Coord) Index() Index {
	return ToIndex(c.X, c.Y)
}

// IndexSet is an unordered set of cell indices
type IndexSet map[Index]struct{}

// NewIndexSet creates a set holding the given indices
func NewIndexSet(indices ...Index) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Contains returns true if the index is in the set
func (s IndexSet) Contains(i Index) bool {
	_, ok := s[i]
	return ok
}

// Add inserts the indices into the set
func (s IndexSet) Add(indices ...Index) {
	for _, i := range indices {
		s[i] = struct{}{}
	}
}

// Len returns the number of indices in the set
func (s IndexSet) Len() int {
	return len(s)
}

// Sorted returns the indices in ascending order
func (s IndexSet) Sorted() []Index {
	out := make([]Index, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Orientation is the axis a ship extends along from its origin
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Toggle returns the other orientation
func (o Orientation) Toggle() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Valid returns true for a known orientation
func (o Orientation) Valid() bool {
	return o == Horizontal || o == Vertical
}

// Ship is a single placed ship
type Ship struct {
	Origin      Index
	Length      int
	Orientation Orientation
	Cells       []Index
}

// Fleet is one side's placed ships and the union of their cells
type Fleet struct {
	Ships []Ship
	Cells IndexSet
}

// NewFleet creates an empty fleet
func NewFleet() *Fleet {
	return &Fleet{Cells: NewIndexSet()}
}

// Add records a ship and its cells
func (f *Fleet) Add(ship Ship) {
	f.Ships = append(f.Ships, ship)
	f.Cells.Add(ship.Cells...)
}

// IsComplete returns true once every ship in FleetSizes has been placed
func (f *Fleet) IsComplete() bool {
	return len(f.Ships) == len(FleetSizes)
}

// PlacementCursor tracks the human's progress through FleetSizes
type PlacementCursor struct {
	ShipIdx     int
	Orientation Orientation
}

// NewPlacementCursor returns a cursor at the first ship, horizontal
func NewPlacementCursor() PlacementCursor {
	return PlacementCursor{ShipIdx: 0, Orientation: Horizontal}
}

// Done returns true once the cursor has moved past the last ship
func (c PlacementCursor) Done() bool {
	return c.ShipIdx >= len(FleetSizes)
}

// ShipLength returns the length of the ship to place next, or 0 when done
func (c PlacementCursor) ShipLength() int {
	if c.Done() {
		return 0
	}
	return FleetSizes[c.ShipIdx]
}

// Clone returns a deep copy of the fleet
func (f *Fleet) Clone() *Fleet {
	out := NewFleet()
	for _, s := range f.Ships {
		s.Cells = append([]Index(nil), s.Cells...)
		out.Add(s)
	}
	return out
}
