package mocks

import (
	"sync"
	"time"

	"github.com/mcoot/battleship/internal/dependencies/scheduler"
)

// ManualScheduler queues deferred calls until the test runs them
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*ManualTask
}

// Ensure ManualScheduler implements Scheduler
var _ scheduler.Scheduler = (*ManualScheduler)(nil)

// NewManualScheduler creates a new ManualScheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// ManualTask is a queued call
type ManualTask struct {
	Delay     time.Duration
	fn        func()
	cancelled bool
	ran       bool
}

// Cancel marks the task so it will not run
func (t *ManualTask) Cancel() bool {
	if t.cancelled || t.ran {
		return false
	}
	t.cancelled = true
	return true
}

// AfterFunc queues f without running it
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) scheduler.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &ManualTask{Delay: d, fn: f}
	s.tasks = append(s.tasks, task)
	return task
}

// Pending returns the number of tasks that have neither run nor been cancelled
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.tasks {
		if !t.cancelled && !t.ran {
			count++
		}
	}
	return count
}

// LastDelay returns the delay of the most recently queued task
func (s *ManualScheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return 0
	}
	return s.tasks[len(s.tasks)-1].Delay
}

// RunPending runs every pending task in queue order and returns how many ran.
// Tasks queued while running are left for the next call.
func (s *ManualScheduler) RunPending() int {
	s.mu.Lock()
	var due []*ManualTask
	for _, t := range s.tasks {
		if !t.cancelled && !t.ran {
			t.ran = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return len(due)
}
