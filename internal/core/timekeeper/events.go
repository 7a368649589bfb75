package timekeeper

import (
	"time"

	"pomodesk/internal/core/model"
)

// Phase represents the current countdown mode.
type Phase string

const (
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
	PhaseOnBreak Phase = "on_break"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventProgress        EventType = "progress"
	EventBreakStart      EventType = "break_start"
	EventSessionComplete EventType = "session_complete"
	EventRollover        EventType = "rollover"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	Remaining time.Duration
	Paused    bool
	OnBreak   bool
	Session   int
	Theme     model.Theme
	At        time.Time
}

// Snapshot is a read-only copy of the countdown state.
type Snapshot struct {
	SecondsLeft    int
	Paused         bool
	BreakTriggered bool
	SessionCounter int
	Pending        bool
}

// Phase derives the display phase from the flags.
func (snapshot Snapshot) Phase() Phase {
	if snapshot.Paused {
		return PhasePaused
	}
	if snapshot.BreakTriggered {
		return PhaseOnBreak
	}
	return PhaseRunning
}

// Remaining returns the seconds left as a duration.
func (snapshot Snapshot) Remaining() time.Duration {
	return time.Duration(snapshot.SecondsLeft) * time.Second
}
