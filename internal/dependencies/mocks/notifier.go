package mocks

import (
	"context"
	"sync"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/notify"
)

// RecordingNotifier stores every event it receives
type RecordingNotifier struct {
	mu     sync.Mutex
	events []model.Event
}

// Ensure RecordingNotifier implements Notifier
var _ notify.Notifier = (*RecordingNotifier)(nil)

// NewRecordingNotifier creates a new RecordingNotifier
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// Notify records the event
func (n *RecordingNotifier) Notify(_ context.Context, event model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events returns a copy of all recorded events
func (n *RecordingNotifier) Events() []model.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]model.Event, len(n.events))
	copy(out, n.events)
	return out
}

// OfType returns recorded events of the given type
func (n *RecordingNotifier) OfType(t model.EventType) []model.Event {
	var out []model.Event
	for _, e := range n.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// LastStatus returns the message of the most recent status event
func (n *RecordingNotifier) LastStatus() string {
	statuses := n.OfType(model.EventStatus)
	if len(statuses) == 0 {
		return ""
	}
	return statuses[len(statuses)-1].Message
}

// Reset clears all recorded events
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}
