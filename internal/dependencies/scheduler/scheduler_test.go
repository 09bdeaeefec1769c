package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAfterFuncRuns(t *testing.T) {
	done := make(chan struct{})
	New().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
}

func TestCancelPreventsRun(t *testing.T) {
	ran := make(chan struct{}, 1)
	task := New().AfterFunc(time.Hour, func() { ran <- struct{}{} })

	assert.True(t, task.Cancel())
	assert.False(t, task.Cancel())
	assert.Empty(t, ran)
}
