package timekeeper

import (
	"sync"
	"time"

	"pomodesk/internal/core/model"
)

// longBreakEvery selects a long break when the completed-session count is a multiple of it.
const longBreakEvery = 4

// CuePlayer plays the notification sound. Implementations must not block.
type CuePlayer interface {
	PlayCue()
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
}

// TimeKeeper is the countdown state machine: work, break trigger, rollover.
type TimeKeeper struct {
	mu             sync.Mutex
	config         model.TimerConfig
	options        Config
	secondsLeft    int
	paused         bool
	breakTriggered bool
	sessionCounter int
	pending        bool
	cuePlayer      CuePlayer
	events         []chan Event
	stopCh         chan struct{}
	running        bool
}

// New creates a TimeKeeper at the start of a fresh session.
func New(config model.TimerConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &TimeKeeper{
		config:      config,
		options:     options,
		secondsLeft: config.SessionSeconds(),
	}
}

// SetCuePlayer injects the sound notifier.
func (keeper *TimeKeeper) SetCuePlayer(player CuePlayer) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.cuePlayer = player
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start launches the ticking loop. A stopped keeper can be started again;
// the countdown continues where it stopped.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	stopCh := make(chan struct{})
	keeper.stopCh = stopCh
	keeper.emitLocked(keeper.stateEventLocked(EventStateChange))
	keeper.mu.Unlock()

	go keeper.run(stopCh)
}

// Stop terminates the ticking loop and closes observers. Channels returned by
// Subscribe before Stop are closed; subscribe again after a restart.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	close(keeper.stopCh)
	keeper.running = false
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns the current countdown state.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked()
}

// Config returns the active configuration.
func (keeper *TimeKeeper) Config() model.TimerConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config
}

// Theme returns the colors for the current phase.
func (keeper *TimeKeeper) Theme() model.Theme {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config.ThemeFor(keeper.breakTriggered)
}

// TogglePause flips the pause flag. The countdown is untouched.
func (keeper *TimeKeeper) TogglePause() {
	keeper.mu.Lock()
	keeper.paused = !keeper.paused
	keeper.emitLocked(keeper.stateEventLocked(EventStateChange))
	keeper.mu.Unlock()
}

// ApplyConfig swaps in new settings without resetting the countdown.
// Durations apply to future cycles; colors apply immediately.
func (keeper *TimeKeeper) ApplyConfig(config model.TimerConfig) {
	keeper.mu.Lock()
	keeper.config = config
	keeper.emitLocked(keeper.stateEventLocked(EventStateChange))
	keeper.mu.Unlock()
}

// Tick advances the countdown by one second.
// The tick after a session reaches zero performs the rollover instead.
func (keeper *TimeKeeper) Tick() {
	keeper.mu.Lock()
	if keeper.pending {
		keeper.rolloverLocked()
		player := keeper.cuePlayer
		keeper.mu.Unlock()
		playCue(player)
		return
	}
	if keeper.paused {
		keeper.mu.Unlock()
		return
	}

	cue := false
	keeper.secondsLeft--
	if keeper.secondsLeft == keeper.config.TriggerSeconds() && !keeper.breakTriggered {
		keeper.enterBreakLocked()
		cue = true
	}
	if keeper.secondsLeft <= 0 {
		keeper.secondsLeft = 0
		keeper.pending = true
		keeper.emitLocked(keeper.stateEventLocked(EventSessionComplete))
	} else if !cue {
		keeper.emitLocked(keeper.stateEventLocked(EventProgress))
	}
	player := keeper.cuePlayer
	keeper.mu.Unlock()

	if cue {
		playCue(player)
	}
}

func (keeper *TimeKeeper) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			keeper.Tick()
		}
	}
}

func (keeper *TimeKeeper) enterBreakLocked() {
	keeper.breakTriggered = true
	long := keeper.sessionCounter%longBreakEvery == 0
	keeper.secondsLeft = int(keeper.config.BreakDuration(long) / time.Second)
	keeper.emitLocked(keeper.stateEventLocked(EventBreakStart))
}

func (keeper *TimeKeeper) rolloverLocked() {
	keeper.sessionCounter++
	keeper.secondsLeft = keeper.config.SessionSeconds()
	keeper.breakTriggered = false
	keeper.paused = false
	keeper.pending = false
	keeper.emitLocked(keeper.stateEventLocked(EventRollover))
}

func (keeper *TimeKeeper) snapshotLocked() Snapshot {
	return Snapshot{
		SecondsLeft:    keeper.secondsLeft,
		Paused:         keeper.paused,
		BreakTriggered: keeper.breakTriggered,
		SessionCounter: keeper.sessionCounter,
		Pending:        keeper.pending,
	}
}

func (keeper *TimeKeeper) stateEventLocked(eventType EventType) Event {
	snapshot := keeper.snapshotLocked()
	return Event{
		Type:      eventType,
		Phase:     snapshot.Phase(),
		Remaining: snapshot.Remaining(),
		Paused:    snapshot.Paused,
		OnBreak:   snapshot.BreakTriggered,
		Session:   snapshot.SessionCounter,
		Theme:     keeper.config.ThemeFor(snapshot.BreakTriggered),
		At:        time.Now(),
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func playCue(player CuePlayer) {
	if player != nil {
		player.PlayCue()
	}
}
