package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// Phase is the coarse stage of a game; it only moves forward
type Phase string

const (
	PhasePlacement  Phase = "placement"   // Human placing ships
	PhaseActivePlay Phase = "active_play" // Shots being exchanged
	PhaseGameOver   Phase = "game_over"   // Terminal
)

// Side identifies one of the two participants
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Other returns the opposing side
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// ShotOutcome classifies a resolved shot
type ShotOutcome string

const (
	OutcomeHit  ShotOutcome = "hit"
	OutcomeMiss ShotOutcome = "miss"
)

// Shot is a single resolved shot
type Shot struct {
	Attacker Side
	Target   Index
	Outcome  ShotOutcome
	At       time.Time
}

// ShotRecord is the set of indices an attacker has fired at and its hit count
type ShotRecord struct {
	Targets IndexSet
	Hits    int
}

// NewShotRecord creates an empty shot record
func NewShotRecord() *ShotRecord {
	return &ShotRecord{Targets: NewIndexSet()}
}

// Remaining returns the indices not yet fired at, in ascending order
func (r *ShotRecord) Remaining() []Index {
	out := make([]Index, 0, CellCount-r.Targets.Len())
	for i := Index(0); i < CellCount; i++ {
		if !r.Targets.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}

// Game is a single human-vs-computer session
type Game struct {
	ID               GameID
	Phase            Phase
	Turn             Side // Meaningful during PhaseActivePlay only
	Winner           Side // Empty until PhaseGameOver
	OpponentStrategy string

	// Placement
	Cursor        PlacementCursor
	PreviewOrigin *Index  // Origin of the in-progress preview, nil if none
	PreviewCells  []Index // Cells currently previewed

	// Boards, keyed by the side that owns the ships
	Fleets map[Side]*Fleet

	// Shots, keyed by the attacking side
	Shots   map[Side]*ShotRecord
	History []Shot

	// Status is the latest status message shown to the human
	Status string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGame creates a session in the placement phase
func NewGame(id GameID, strategy string, now time.Time) *Game {
	return &Game{
		ID:               id,
		Phase:            PhasePlacement,
		OpponentStrategy: strategy,
		Cursor:           NewPlacementCursor(),
		Fleets: map[Side]*Fleet{
			SidePlayer:   NewFleet(),
			SideOpponent: NewFleet(),
		},
		Shots: map[Side]*ShotRecord{
			SidePlayer:   NewShotRecord(),
			SideOpponent: NewShotRecord(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOver returns true once a winner has been declared
func (g *Game) IsOver() bool {
	return g.Phase == PhaseGameOver
}

// HitsFor returns the number of hits scored by the attacking side
func (g *Game) HitsFor(attacker Side) int {
	return g.Shots[attacker].Hits
}

// ReplyPending returns true while the opponent's reply turn is outstanding
func (g *Game) ReplyPending() bool {
	return g.Phase == PhaseActivePlay && g.Turn == SideOpponent
}

// Clone returns a deep copy of the game, safe to hand out while the
// original continues to be mutated
func (g *Game) Clone() *Game {
	out := *g
	if g.PreviewOrigin != nil {
		origin := *g.PreviewOrigin
		out.PreviewOrigin = &origin
	}
	out.PreviewCells = append([]Index(nil), g.PreviewCells...)
	out.Fleets = make(map[Side]*Fleet, len(g.Fleets))
	for side, f := range g.Fleets {
		out.Fleets[side] = f.Clone()
	}
	out.Shots = make(map[Side]*ShotRecord, len(g.Shots))
	for side, r := range g.Shots {
		out.Shots[side] = &ShotRecord{Targets: NewIndexSet(r.Targets.Sorted()...), Hits: r.Hits}
	}
	out.History = append([]Shot(nil), g.History...)
	return &out
}
