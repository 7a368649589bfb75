package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodesk/internal/core/model"
)

type countingPlayer struct {
	plays int
}

func (player *countingPlayer) PlayCue() {
	player.plays++
}

func newKeeper(t *testing.T, mutate func(*model.TimerConfig)) (*TimeKeeper, *countingPlayer) {
	t.Helper()
	config := model.DefaultTimerConfig()
	if mutate != nil {
		mutate(&config)
	}
	keeper := New(config, Config{})
	player := &countingPlayer{}
	keeper.SetCuePlayer(player)
	return keeper, player
}

func tickN(keeper *TimeKeeper, n int) {
	for i := 0; i < n; i++ {
		keeper.Tick()
	}
}

func TestNewStartsFreshSession(t *testing.T) {
	keeper, _ := newKeeper(t, nil)

	snapshot := keeper.Snapshot()
	assert.Equal(t, 3600, snapshot.SecondsLeft)
	assert.Equal(t, 0, snapshot.SessionCounter)
	assert.False(t, snapshot.BreakTriggered)
	assert.Equal(t, PhaseRunning, snapshot.Phase())
}

func TestBreakFiresExactlyAtTriggerMark(t *testing.T) {
	keeper, player := newKeeper(t, nil)

	tickN(keeper, 1499)
	snapshot := keeper.Snapshot()
	assert.False(t, snapshot.BreakTriggered)
	assert.Equal(t, 2101, snapshot.SecondsLeft)
	assert.Equal(t, 0, player.plays)

	keeper.Tick()
	snapshot = keeper.Snapshot()
	assert.True(t, snapshot.BreakTriggered)
	assert.Equal(t, PhaseOnBreak, snapshot.Phase())
	assert.Equal(t, 15*60, snapshot.SecondsLeft, "first break is long")
	assert.Equal(t, 1, player.plays)
}

func TestSecondSessionBreakIsShort(t *testing.T) {
	keeper, _ := newKeeper(t, func(config *model.TimerConfig) {
		config.TotalMinutes = 2
		config.BreakTriggerMinutes = 1
		config.LongBreakMinutes = 3
		config.ShortBreakMinutes = 1
	})

	tickN(keeper, 60)
	require.True(t, keeper.Snapshot().BreakTriggered)
	tickN(keeper, 3*60)
	require.True(t, keeper.Snapshot().Pending)
	keeper.Tick()
	require.Equal(t, 1, keeper.Snapshot().SessionCounter)

	tickN(keeper, 60)
	snapshot := keeper.Snapshot()
	assert.True(t, snapshot.BreakTriggered)
	assert.Equal(t, 60, snapshot.SecondsLeft)
}

func TestLongBreakEveryFourthSession(t *testing.T) {
	keeper, _ := newKeeper(t, func(config *model.TimerConfig) {
		config.TotalMinutes = 1
		config.BreakTriggerMinutes = 0
		config.LongBreakMinutes = 3
		config.ShortBreakMinutes = 2
	})

	for session := 0; session < 9; session++ {
		tickN(keeper, 60)
		snapshot := keeper.Snapshot()
		require.True(t, snapshot.BreakTriggered, "session %d", session)
		expected := 2 * 60
		if session%4 == 0 {
			expected = 3 * 60
		}
		assert.Equal(t, expected, snapshot.SecondsLeft, "session %d", session)

		tickN(keeper, snapshot.SecondsLeft)
		require.True(t, keeper.Snapshot().Pending)
		keeper.Tick()
		assert.Equal(t, session+1, keeper.Snapshot().SessionCounter)
	}
}

func TestTriggerBeyondSessionNeverFires(t *testing.T) {
	keeper, player := newKeeper(t, func(config *model.TimerConfig) {
		config.TotalMinutes = 2
		config.BreakTriggerMinutes = 5
	})

	tickN(keeper, 120)
	snapshot := keeper.Snapshot()
	assert.False(t, snapshot.BreakTriggered)
	assert.True(t, snapshot.Pending)
	assert.Equal(t, 0, snapshot.SecondsLeft)
	assert.Equal(t, 0, player.plays)
}

func TestRolloverAfterOneTickDelay(t *testing.T) {
	keeper, player := newKeeper(t, func(config *model.TimerConfig) {
		config.TotalMinutes = 1
		config.BreakTriggerMinutes = 10
	})

	tickN(keeper, 60)
	snapshot := keeper.Snapshot()
	require.Equal(t, 0, snapshot.SecondsLeft)
	require.True(t, snapshot.Pending)
	assert.Equal(t, 0, snapshot.SessionCounter)

	keeper.Tick()
	snapshot = keeper.Snapshot()
	assert.False(t, snapshot.Pending)
	assert.Equal(t, 1, snapshot.SessionCounter)
	assert.Equal(t, 60, snapshot.SecondsLeft)
	assert.False(t, snapshot.BreakTriggered)
	assert.Equal(t, 1, player.plays)
}

func TestRolloverRunsWhilePausedAndClearsPause(t *testing.T) {
	keeper, _ := newKeeper(t, func(config *model.TimerConfig) {
		config.TotalMinutes = 1
		config.BreakTriggerMinutes = 10
	})

	tickN(keeper, 60)
	keeper.TogglePause()
	require.True(t, keeper.Snapshot().Paused)

	keeper.Tick()
	snapshot := keeper.Snapshot()
	assert.False(t, snapshot.Paused)
	assert.Equal(t, 1, snapshot.SessionCounter)
}

func TestTogglePauseGatesTick(t *testing.T) {
	keeper, _ := newKeeper(t, nil)
	tickN(keeper, 10)

	keeper.TogglePause()
	assert.Equal(t, PhasePaused, keeper.Snapshot().Phase())
	tickN(keeper, 100)
	assert.Equal(t, 3590, keeper.Snapshot().SecondsLeft)

	keeper.TogglePause()
	assert.Equal(t, PhaseRunning, keeper.Snapshot().Phase())
	assert.Equal(t, 3590, keeper.Snapshot().SecondsLeft)

	keeper.Tick()
	assert.Equal(t, 3589, keeper.Snapshot().SecondsLeft)
}

func TestApplyConfigKeepsCountdown(t *testing.T) {
	keeper, _ := newKeeper(t, nil)
	tickN(keeper, 1500)
	require.True(t, keeper.Snapshot().BreakTriggered)
	before := keeper.Snapshot()

	updated := model.DefaultTimerConfig()
	updated.TotalMinutes = 25
	updated.Break = model.Theme{Background: "#123456", Foreground: "yellow"}
	keeper.ApplyConfig(updated)

	assert.Equal(t, before, keeper.Snapshot())
	assert.Equal(t, updated.Break, keeper.Theme())
	assert.Equal(t, 25, keeper.Config().TotalMinutes)
}

func TestApplyConfigAffectsNextSession(t *testing.T) {
	keeper, _ := newKeeper(t, func(config *model.TimerConfig) {
		config.TotalMinutes = 1
		config.BreakTriggerMinutes = 10
	})
	tickN(keeper, 30)

	updated := keeper.Config()
	updated.TotalMinutes = 3
	keeper.ApplyConfig(updated)
	assert.Equal(t, 30, keeper.Snapshot().SecondsLeft)

	tickN(keeper, 31)
	assert.Equal(t, 180, keeper.Snapshot().SecondsLeft)
}

func TestEventsCarryThemeAndPhase(t *testing.T) {
	keeper, _ := newKeeper(t, func(config *model.TimerConfig) {
		config.TotalMinutes = 1
		config.BreakTriggerMinutes = 0
		config.ShortBreakMinutes = 1
		config.LongBreakMinutes = 1
	})
	events := keeper.Subscribe(200)

	tickN(keeper, 60)
	var last Event
	for len(events) > 0 {
		last = <-events
	}
	assert.Equal(t, EventBreakStart, last.Type)
	assert.Equal(t, PhaseOnBreak, last.Phase)
	assert.Equal(t, keeper.Config().Break, last.Theme)

	tickN(keeper, 61)
	for len(events) > 0 {
		last = <-events
	}
	assert.Equal(t, EventRollover, last.Type)
	assert.Equal(t, keeper.Config().Normal, last.Theme)
	assert.Equal(t, 1, last.Session)
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	keeper, _ := newKeeper(t, nil)
	events := keeper.Subscribe(1)

	tickN(keeper, 10)
	assert.Len(t, events, 1)
	assert.Equal(t, 3590, keeper.Snapshot().SecondsLeft)
}

func TestStartAfterStopResumesTicking(t *testing.T) {
	keeper := New(model.DefaultTimerConfig(), Config{TickInterval: 5 * time.Millisecond})

	keeper.Start()
	first := keeper.Subscribe(1)
	keeper.Stop()
	for range first {
		// drained until closed by Stop
	}

	stoppedAt := keeper.Snapshot().SecondsLeft
	events := keeper.Subscribe(16)
	keeper.Start()
	defer keeper.Stop()

	require.Eventually(t, func() bool {
		return keeper.Snapshot().SecondsLeft < stoppedAt
	}, 2*time.Second, 5*time.Millisecond)
	event, ok := <-events
	require.True(t, ok)
	assert.Equal(t, EventStateChange, event.Type)
}
