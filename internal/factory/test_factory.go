package factory

import (
	"time"

	"github.com/mcoot/battleship/internal/dependencies/mocks"
	"github.com/mcoot/battleship/internal/notify"
	"github.com/mcoot/battleship/internal/services/game"
	"github.com/mcoot/battleship/internal/storage/memory"
	"github.com/mcoot/battleship/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockScheduler *mocks.ManualScheduler
	Events        *mocks.RecordingNotifier
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Extra notifiers receive events alongside the recording notifier.
func NewTestApp(extra ...notify.Notifier) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockScheduler := mocks.NewManualScheduler()
	events := mocks.NewRecordingNotifier()

	app := newWithDependencies(
		memory.New(),
		mockClock,
		mockRandom,
		mockScheduler,
		append([]notify.Notifier{events}, extra...),
		game.DefaultReplyDelay,
		testutil.NopLogger(),
	)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockScheduler: mockScheduler,
		Events:        events,
	}
}
