package timekeeper

import (
	"time"

	"intervalcoach/internal/core/model"
)

// Phase tags a timed segment of the workout.
type Phase int

const (
	PhasePreparation Phase = iota + 1
	PhaseWork
	PhaseRest
)

func (phase Phase) String() string {
	switch phase {
	case PhasePreparation:
		return "preparation"
	case PhaseWork:
		return "work"
	case PhaseRest:
		return "rest"
	default:
		return "unknown"
	}
}

// RunState represents the TimeKeeper lifecycle.
type RunState string

const (
	StateIdle      RunState = "idle"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateCancelled RunState = "cancelled"
)

// TickEvent is raised once per elapsed tick while a run is active.
type TickEvent struct {
	Phase     Phase
	Elapsed   int
	Remaining int
}

// Duration returns the configured length of the phase occurrence.
func (event TickEvent) Duration() int {
	return event.Elapsed + event.Remaining
}

// RunInfo identifies a run in started and ended notifications.
type RunInfo struct {
	ID     string
	Config model.TimerConfig
	At     time.Time
}

// EventType defines the type of channel Event.
type EventType string

const (
	EventStarted EventType = "started"
	EventTick    EventType = "tick"
	EventEnded   EventType = "ended"
)

// Event is the channel form of a TimeKeeper notification, see Subscribe.
type Event struct {
	Type      EventType
	RunID     string
	Phase     Phase
	Elapsed   int
	Remaining int
	At        time.Time
}
