package ui

import (
	"github.com/mcoot/battleship/internal/model"
)

// Mark is what the terminal shows in a single cell
type Mark uint8

const (
	MarkWater Mark = iota
	MarkShip
	MarkPreview
	MarkHit
	MarkMiss
)

// BoardView mirrors one side's board as seen by the human
type BoardView struct {
	Cells    [model.CellCount]Mark
	Disabled bool
}

// View is the presentation state of one game, built from controller events
type View struct {
	GameID model.GameID
	Phase  model.Phase
	Status string
	Notice string
	Boards map[model.Side]*BoardView
	Cursor model.Coord
}

// NewView creates a view for a freshly created game
func NewView(game *model.Game) *View {
	return &View{
		GameID: game.ID,
		Phase:  game.Phase,
		Status: game.Status,
		Boards: map[model.Side]*BoardView{
			model.SidePlayer:   {},
			model.SideOpponent: {},
		},
	}
}

// ActiveBoard is the board the cursor moves over: the human's own board
// while placing, the computer's board afterwards
func (v *View) ActiveBoard() model.Side {
	if v.Phase == model.PhasePlacement {
		return model.SidePlayer
	}
	return model.SideOpponent
}

// MoveCursor shifts the cursor, clamped to the board
func (v *View) MoveCursor(dx, dy int) {
	v.Cursor.X = clamp(v.Cursor.X+dx, 0, model.BoardSize-1)
	v.Cursor.Y = clamp(v.Cursor.Y+dy, 0, model.BoardSize-1)
}

// Apply updates the view from a controller event. Events for other games
// are ignored and reported as not applied.
func (v *View) Apply(event model.Event) bool {
	if event.GameID != v.GameID {
		return false
	}

	switch event.Type {
	case model.EventStatus:
		v.Status = event.Message
	case model.EventPhaseChanged:
		v.Phase = event.Phase
	case model.EventInputDisabled:
		if b := v.board(event.Board); b != nil {
			b.Disabled = true
		}
	default:
		if event.IsCellEvent() && event.Index.Valid() {
			if b := v.board(event.Board); b != nil {
				b.Cells[event.Index] = nextMark(b.Cells[event.Index], event.Type)
			}
		}
	}
	return true
}

func (v *View) board(side model.Side) *BoardView {
	return v.Boards[side]
}

func nextMark(current Mark, eventType model.EventType) Mark {
	switch eventType {
	case model.EventShipMarked:
		return MarkShip
	case model.EventHit:
		return MarkHit
	case model.EventMiss:
		return MarkMiss
	case model.EventPreviewOn:
		if current == MarkWater {
			return MarkPreview
		}
	case model.EventPreviewOff:
		if current == MarkPreview {
			return MarkWater
		}
	}
	return current
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
