package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"intervalcoach/internal/core/timekeeper"
)

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00", FormatSeconds(0))
	assert.Equal(t, "00:00", FormatSeconds(-4))
	assert.Equal(t, "00:17", FormatSeconds(17))
	assert.Equal(t, "02:05", FormatSeconds(125))
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.5, Progress(timekeeper.TickEvent{Phase: timekeeper.PhaseWork, Elapsed: 15, Remaining: 15}))
	assert.Equal(t, 1.0, Progress(timekeeper.TickEvent{Phase: timekeeper.PhaseRest, Elapsed: 10, Remaining: 0}))
	assert.Equal(t, 1.0, Progress(timekeeper.TickEvent{}))
}

func TestPhaseTitle(t *testing.T) {
	assert.Equal(t, "Get ready", PhaseTitle(timekeeper.PhasePreparation))
	assert.Equal(t, "Work", PhaseTitle(timekeeper.PhaseWork))
	assert.Equal(t, "Rest", PhaseTitle(timekeeper.PhaseRest))
}
