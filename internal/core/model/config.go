package model

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration indicates a workout that cannot be run.
var ErrInvalidConfiguration = errors.New("invalid timer configuration")

// ConfigError describes the offending TimerConfig field.
type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s must not be %d", ErrInvalidConfiguration, e.Field, e.Value)
}

// Is reports ErrInvalidConfiguration so callers can match with errors.Is.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// TimerConfig contains the parameters of a single workout run.
// Durations are whole seconds.
type TimerConfig struct {
	Exercises int
	Sets      int
	WorkTime  int
	WorkRest  int
	SetRest   int
}

// DefaultTimerConfig returns the stock workout: two sets of nine exercises.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Exercises: 9,
		Sets:      2,
		WorkTime:  30,
		WorkRest:  10,
		SetRest:   20,
	}
}

// Validate checks counts are positive and durations are not negative.
func (config TimerConfig) Validate() error {
	switch {
	case config.Exercises <= 0:
		return &ConfigError{Field: "exercises", Value: config.Exercises}
	case config.Sets <= 0:
		return &ConfigError{Field: "sets", Value: config.Sets}
	case config.WorkTime < 0:
		return &ConfigError{Field: "work time", Value: config.WorkTime}
	case config.WorkRest < 0:
		return &ConfigError{Field: "work rest", Value: config.WorkRest}
	case config.SetRest < 0:
		return &ConfigError{Field: "set rest", Value: config.SetRest}
	}
	return nil
}

// Describe returns a human readable summary of the workout.
func (config TimerConfig) Describe() string {
	return fmt.Sprintf("%d sets of %d exercises with %d seconds rest in between. %d seconds workout, %d seconds rest",
		config.Sets, config.Exercises, config.SetRest, config.WorkTime, config.WorkRest)
}

// TotalTicks returns the number of tick notifications a full run emits
// after a preparation countdown of the given length.
func (config TimerConfig) TotalTicks(preparation int) int {
	return preparation +
		config.Sets*config.Exercises*config.WorkTime +
		config.Sets*(config.Exercises-1)*config.WorkRest +
		(config.Sets-1)*config.SetRest
}
