package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"intervalcoach/internal/announcer"
)

func TestMessage(t *testing.T) {
	assert.NotEmpty(t, Message(announcer.CueTimerSet))
	assert.NotEmpty(t, Message(announcer.CuePrepare))
	assert.NotEmpty(t, Message(announcer.CueHalfway))
	assert.NotEmpty(t, Message(announcer.CueAllDone))
	assert.Empty(t, Message(announcer.CueCountdown))
}
