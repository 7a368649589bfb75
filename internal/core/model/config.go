package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default timer values.
const (
	DefaultTotalMinutes      = 60
	DefaultBreakTrigger      = 35
	DefaultLongBreakMinutes  = 15
	DefaultShortBreakMinutes = 5

	DefaultNormalBackground = "black"
	DefaultNormalForeground = "white"
	DefaultBreakBackground  = "red"
	DefaultBreakForeground  = "white"
)

var (
	// ErrInvalidDuration indicates a duration that is not a positive number of minutes.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	// ErrInvalidTrigger indicates a negative break trigger.
	ErrInvalidTrigger = errors.New("break trigger must not be negative")
	// ErrInvalidColor indicates an empty color string.
	ErrInvalidColor = errors.New("color must not be empty")
)

// Theme is a background/foreground color pair.
type Theme struct {
	Background string
	Foreground string
}

// TimerConfig contains the user-editable timer settings.
type TimerConfig struct {
	TotalMinutes        int
	BreakTriggerMinutes int
	LongBreakMinutes    int
	ShortBreakMinutes   int

	Normal Theme
	Break  Theme

	// CueFile is played on break and rollover. Empty selects the built-in cue.
	CueFile string
}

// DefaultTimerConfig returns the settings used when nothing is persisted.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		TotalMinutes:        DefaultTotalMinutes,
		BreakTriggerMinutes: DefaultBreakTrigger,
		LongBreakMinutes:    DefaultLongBreakMinutes,
		ShortBreakMinutes:   DefaultShortBreakMinutes,
		Normal: Theme{
			Background: DefaultNormalBackground,
			Foreground: DefaultNormalForeground,
		},
		Break: Theme{
			Background: DefaultBreakBackground,
			Foreground: DefaultBreakForeground,
		},
	}
}

// Validate reports the first invalid field.
// A trigger larger than the session is valid and means no break fires.
func (config TimerConfig) Validate() error {
	if config.TotalMinutes <= 0 {
		return fmt.Errorf("session length: %w", ErrInvalidDuration)
	}
	if config.BreakTriggerMinutes < 0 {
		return fmt.Errorf("break trigger: %w", ErrInvalidTrigger)
	}
	if config.LongBreakMinutes <= 0 {
		return fmt.Errorf("long break: %w", ErrInvalidDuration)
	}
	if config.ShortBreakMinutes <= 0 {
		return fmt.Errorf("short break: %w", ErrInvalidDuration)
	}
	colors := []struct {
		name  string
		value string
	}{
		{name: "normal background", value: config.Normal.Background},
		{name: "normal text", value: config.Normal.Foreground},
		{name: "break background", value: config.Break.Background},
		{name: "break text", value: config.Break.Foreground},
	}
	for _, field := range colors {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s: %w", field.name, ErrInvalidColor)
		}
	}
	return nil
}

// SessionSeconds returns the length of a work session in seconds.
func (config TimerConfig) SessionSeconds() int {
	return config.TotalMinutes * 60
}

// TriggerSeconds returns the remaining-seconds mark at which the break fires.
func (config TimerConfig) TriggerSeconds() int {
	return config.BreakTriggerMinutes * 60
}

// BreakDuration returns the long or short break length.
func (config TimerConfig) BreakDuration(long bool) time.Duration {
	if long {
		return time.Duration(config.LongBreakMinutes) * time.Minute
	}
	return time.Duration(config.ShortBreakMinutes) * time.Minute
}

// ThemeFor returns the theme for the given break state.
func (config TimerConfig) ThemeFor(onBreak bool) Theme {
	if onBreak {
		return config.Break
	}
	return config.Normal
}
