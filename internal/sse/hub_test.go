package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "hit",
			data:      `{"index":5}`,
			expected:  "event: hit\ndata: {\"index\":5}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "status",
			data:      "line1\nline2",
			expected:  "event: status\ndata: line1\ndata: line2\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "carriage returns",
			eventName: "test",
			data:      "line1\r\nline2\r\n",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestHubBroadcastsToClients(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	hub := manager.GetOrCreateHub("GAME1")
	first := NewClient(hub)
	second := NewClient(hub)
	require.True(t, hub.Register(first))
	require.True(t, hub.Register(second))
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("miss", "42")

	for _, c := range []*Client{first, second} {
		select {
		case msg := <-c.send:
			assert.Equal(t, "event: miss\ndata: 42\n\n", string(msg))
		case <-time.After(time.Second):
			t.Fatal("client did not receive message")
		}
	}
}

func TestClientIDsAreUnique(t *testing.T) {
	hub := NewHub("GAME1", testutil.NopLogger())
	a := NewClient(hub)
	b := NewClient(hub)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestUnregisterClosesClient(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	hub := manager.GetOrCreateHub("GAME1")
	client := NewClient(hub)
	require.True(t, hub.Register(client))
	hub.Unregister(client)

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client channel was not closed")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestRemoveHubDisconnectsClients(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	hub := manager.GetOrCreateHub("GAME1")
	client := NewClient(hub)
	require.True(t, hub.Register(client))

	manager.RemoveHub("GAME1")
	assert.Nil(t, manager.GetHub("GAME1"))

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client channel was not closed")
	}

	// A closed hub refuses new clients
	assert.False(t, hub.Register(NewClient(hub)))
}

func TestCleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	manager.GetOrCreateHub("EMPTY")
	busy := manager.GetOrCreateHub("BUSY")
	require.True(t, busy.Register(NewClient(busy)))
	require.Eventually(t, func() bool { return busy.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, manager.CleanupEmptyHubs())
	assert.Nil(t, manager.GetHub("EMPTY"))
	assert.NotNil(t, manager.GetHub("BUSY"))
}
