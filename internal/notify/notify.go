package notify

import (
	"context"

	"github.com/mcoot/battleship/internal/model"
)

// Notifier receives outbound events from the game controller.
// Implementations must not block and must not call back into the controller.
type Notifier interface {
	Notify(ctx context.Context, event model.Event)
}

// Nop discards all events
type Nop struct{}

// Notify does nothing
func (Nop) Notify(context.Context, model.Event) {}

// Multi fans events out to several notifiers in order
type Multi []Notifier

// Notify forwards the event to every notifier
func (m Multi) Notify(ctx context.Context, event model.Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, event)
		}
	}
}
