package scheduler

import "time"

// Task is a deferred call that has not necessarily run yet
type Task interface {
	// Cancel prevents the task from running. It returns false if the task
	// already ran or was already cancelled.
	Cancel() bool
}

// Scheduler runs single-shot deferred calls and can be mocked for testing
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// TimerScheduler implements Scheduler using time.AfterFunc
type TimerScheduler struct{}

// New creates a new TimerScheduler
func New() *TimerScheduler {
	return &TimerScheduler{}
}

// AfterFunc calls f on its own goroutine once d has elapsed
func (s *TimerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return &timerTask{timer: time.AfterFunc(d, f)}
}

type timerTask struct {
	timer *time.Timer
}

func (t *timerTask) Cancel() bool {
	return t.timer.Stop()
}
