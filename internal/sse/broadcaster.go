package sse

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/notify"
)

// EventMessage is the JSON payload of a game event on the wire
type EventMessage struct {
	Type      string    `json:"type"`
	GameID    string    `json:"game_id"`
	Board     string    `json:"board,omitempty"`
	Index     *int      `json:"index,omitempty"`
	X         *int      `json:"x,omitempty"`
	Y         *int      `json:"y,omitempty"`
	Message   string    `json:"message,omitempty"`
	Phase     string    `json:"phase,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEventMessage converts a controller event to its wire form
func NewEventMessage(event model.Event) EventMessage {
	msg := EventMessage{
		Type:      string(event.Type),
		GameID:    string(event.GameID),
		Board:     string(event.Board),
		Message:   event.Message,
		Phase:     string(event.Phase),
		Timestamp: event.Timestamp,
	}
	if event.IsCellEvent() {
		idx := int(event.Index)
		coord := model.ToCoords(event.Index)
		msg.Index = &idx
		msg.X = &coord.X
		msg.Y = &coord.Y
	}
	return msg
}

// Broadcaster publishes controller events to the game's SSE hub
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// Ensure Broadcaster implements Notifier
var _ notify.Notifier = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify sends the event to every listener on its game, if any
func (b *Broadcaster) Notify(ctx context.Context, event model.Event) {
	hub := b.hubManager.GetHub(event.GameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(NewEventMessage(event))
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("game_id", string(event.GameID)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(string(event.Type), string(data))
}
