package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/battleship/internal/dependencies/mocks"
	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/notify"
)

func TestMultiForwardsInOrder(t *testing.T) {
	first := mocks.NewRecordingNotifier()
	second := mocks.NewRecordingNotifier()
	multi := notify.Multi{first, nil, second}

	multi.Notify(context.Background(), model.Event{Type: model.EventStatus, Message: "Hit!"})
	multi.Notify(context.Background(), model.Event{Type: model.EventHit, Index: 4})

	for _, n := range []*mocks.RecordingNotifier{first, second} {
		events := n.Events()
		if assert.Len(t, events, 2) {
			assert.Equal(t, model.EventStatus, events[0].Type)
			assert.Equal(t, model.EventHit, events[1].Type)
		}
	}
}

func TestNopDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		notify.Nop{}.Notify(context.Background(), model.Event{Type: model.EventMiss})
	})
}
