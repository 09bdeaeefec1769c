package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/battleship/internal/model"
)

func newTestView() *View {
	return NewView(&model.Game{ID: "GAME01", Phase: model.PhasePlacement, Status: "Place ship"})
}

func cellEvent(t model.EventType, side model.Side, index model.Index) model.Event {
	return model.Event{Type: t, GameID: "GAME01", Board: side, Index: index}
}

func TestViewAppliesCellEvents(t *testing.T) {
	v := newTestView()

	v.Apply(cellEvent(model.EventShipMarked, model.SidePlayer, 3))
	v.Apply(cellEvent(model.EventHit, model.SideOpponent, 50))
	v.Apply(cellEvent(model.EventMiss, model.SideOpponent, 51))

	assert.Equal(t, MarkShip, v.Boards[model.SidePlayer].Cells[3])
	assert.Equal(t, MarkHit, v.Boards[model.SideOpponent].Cells[50])
	assert.Equal(t, MarkMiss, v.Boards[model.SideOpponent].Cells[51])
	assert.Equal(t, MarkWater, v.Boards[model.SidePlayer].Cells[50])
}

func TestViewPreviewLeavesShipsAlone(t *testing.T) {
	v := newTestView()
	v.Apply(cellEvent(model.EventShipMarked, model.SidePlayer, 0))

	v.Apply(cellEvent(model.EventPreviewOn, model.SidePlayer, 0))
	v.Apply(cellEvent(model.EventPreviewOn, model.SidePlayer, 1))
	assert.Equal(t, MarkShip, v.Boards[model.SidePlayer].Cells[0])
	assert.Equal(t, MarkPreview, v.Boards[model.SidePlayer].Cells[1])

	v.Apply(cellEvent(model.EventPreviewOff, model.SidePlayer, 0))
	v.Apply(cellEvent(model.EventPreviewOff, model.SidePlayer, 1))
	assert.Equal(t, MarkShip, v.Boards[model.SidePlayer].Cells[0])
	assert.Equal(t, MarkWater, v.Boards[model.SidePlayer].Cells[1])
}

func TestViewAppliesSessionEvents(t *testing.T) {
	v := newTestView()

	v.Apply(model.Event{Type: model.EventStatus, GameID: "GAME01", Message: "You win!"})
	v.Apply(model.Event{Type: model.EventPhaseChanged, GameID: "GAME01", Phase: model.PhaseGameOver})
	v.Apply(model.Event{Type: model.EventInputDisabled, GameID: "GAME01", Board: model.SideOpponent})

	assert.Equal(t, "You win!", v.Status)
	assert.Equal(t, model.PhaseGameOver, v.Phase)
	assert.True(t, v.Boards[model.SideOpponent].Disabled)
	assert.False(t, v.Boards[model.SidePlayer].Disabled)
}

func TestViewIgnoresOtherGames(t *testing.T) {
	v := newTestView()

	applied := v.Apply(model.Event{Type: model.EventStatus, GameID: "OTHER", Message: "nope"})

	assert.False(t, applied)
	assert.Equal(t, "Place ship", v.Status)
}

func TestViewCursor(t *testing.T) {
	v := newTestView()
	assert.Equal(t, model.SidePlayer, v.ActiveBoard())

	v.MoveCursor(-1, -1)
	assert.Equal(t, model.Coord{X: 0, Y: 0}, v.Cursor)

	v.MoveCursor(20, 4)
	assert.Equal(t, model.Coord{X: 9, Y: 4}, v.Cursor)

	v.Phase = model.PhaseActivePlay
	assert.Equal(t, model.SideOpponent, v.ActiveBoard())
}
