package model

import "time"

// EventType identifies an outbound notification to the presentation layer
type EventType string

const (
	// Cell events
	EventShipMarked EventType = "ship-marked"
	EventHit        EventType = "hit"
	EventMiss       EventType = "miss"
	EventPreviewOn  EventType = "preview-on"
	EventPreviewOff EventType = "preview-off"

	// Session events
	EventStatus        EventType = "status"
	EventPhaseChanged  EventType = "phase-changed"
	EventInputDisabled EventType = "input-disabled"
)

// Event is a single notification emitted by the game controller
type Event struct {
	Type      EventType
	GameID    GameID
	Board     Side  // Owner of the board the event concerns, empty for session events
	Index     Index // Cell index for cell events
	Message   string
	Phase     Phase
	Timestamp time.Time
}

// IsCellEvent returns true for events that target a single cell
func (e Event) IsCellEvent() bool {
	switch e.Type {
	case EventShipMarked, EventHit, EventMiss, EventPreviewOn, EventPreviewOff:
		return true
	default:
		return false
	}
}
