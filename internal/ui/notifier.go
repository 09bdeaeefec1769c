package ui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/notify"
)

// WakeEvent tells the input loop that game events are waiting to be drained
type WakeEvent struct {
	when time.Time
}

// When returns the time the wake-up was posted
func (e *WakeEvent) When() time.Time {
	return e.when
}

// Notifier buffers controller events for the UI goroutine. The tcell queue is
// small and events are often emitted from the UI goroutine itself, so only a
// single wake-up is ever outstanding and the events wait here.
type Notifier struct {
	screen *Screen
	logger *slog.Logger

	mu      sync.Mutex
	pending []model.Event
	woken   bool
}

// Ensure Notifier implements notify.Notifier
var _ notify.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier waking the given screen
func NewNotifier(screen *Screen, logger *slog.Logger) *Notifier {
	return &Notifier{
		screen: screen,
		logger: logger.With(slog.String("component", "ui-notifier")),
	}
}

// Notify queues the event and wakes the input loop if it is not already due
func (n *Notifier) Notify(ctx context.Context, event model.Event) {
	n.mu.Lock()
	n.pending = append(n.pending, event)
	wake := !n.woken
	n.woken = true
	n.mu.Unlock()

	if !wake {
		return
	}
	if err := n.screen.PostEvent(&WakeEvent{when: time.Now()}); err != nil {
		// The next Notify or Drain picks the events up
		n.mu.Lock()
		n.woken = false
		n.mu.Unlock()
		n.logger.DebugContext(ctx, "wake-up not posted",
			slog.String("game_id", string(event.GameID)),
			slog.String("error", err.Error()),
		)
	}
}

// Drain returns the queued events in order and clears the queue
func (n *Notifier) Drain() []model.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	n.woken = false
	return out
}
