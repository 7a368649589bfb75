package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pomodesk/internal/core/model"
)

// ErrNotInteger indicates a duration field that is not a whole number.
var ErrNotInteger = errors.New("please enter a whole number")

// FormValues holds the raw text of the duration entries.
type FormValues struct {
	TotalMinutes      string
	BreakTrigger      string
	LongBreakMinutes  string
	ShortBreakMinutes string
}

// ValuesFrom renders config durations for editing.
func ValuesFrom(config model.TimerConfig) FormValues {
	return FormValues{
		TotalMinutes:      strconv.Itoa(config.TotalMinutes),
		BreakTrigger:      strconv.Itoa(config.BreakTriggerMinutes),
		LongBreakMinutes:  strconv.Itoa(config.LongBreakMinutes),
		ShortBreakMinutes: strconv.Itoa(config.ShortBreakMinutes),
	}
}

// Apply parses values over base. base is returned unchanged alongside any error.
func (values FormValues) Apply(base model.TimerConfig) (model.TimerConfig, error) {
	updated := base
	fields := []struct {
		label  string
		raw    string
		target *int
	}{
		{label: "Pomodoro duration", raw: values.TotalMinutes, target: &updated.TotalMinutes},
		{label: "Break trigger time", raw: values.BreakTrigger, target: &updated.BreakTriggerMinutes},
		{label: "Long break duration", raw: values.LongBreakMinutes, target: &updated.LongBreakMinutes},
		{label: "Short break duration", raw: values.ShortBreakMinutes, target: &updated.ShortBreakMinutes},
	}

	for _, field := range fields {
		parsed, err := strconv.Atoi(strings.TrimSpace(field.raw))
		if err != nil {
			return base, fmt.Errorf("%s: %w", field.label, ErrNotInteger)
		}
		*field.target = parsed
	}

	if err := updated.Validate(); err != nil {
		return base, err
	}
	return updated, nil
}
