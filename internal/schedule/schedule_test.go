package schedule

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervalcoach/internal/core/model"
	"intervalcoach/internal/core/timekeeper"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeStarter struct {
	calls []model.TimerConfig
	err   error
}

func (s *fakeStarter) Start(config model.TimerConfig) error {
	s.calls = append(s.calls, config)
	return s.err
}

func TestNew_InvalidExpression(t *testing.T) {
	_, err := New("every morning", &fakeStarter{}, model.DefaultTimerConfig(), discardLogger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every morning")
}

func TestNew_InvalidWorkout(t *testing.T) {
	_, err := New("0 7 * * *", &fakeStarter{}, model.TimerConfig{}, discardLogger)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestScheduler_Next(t *testing.T) {
	s, err := New("30 7 * * 1-5", &fakeStarter{}, model.DefaultTimerConfig(), discardLogger)
	require.NoError(t, err)

	// Saturday 2026-10-17 12:00 -> Monday 07:30.
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, time.October, 19, 7, 30, 0, 0, time.Local), s.Next(now))
}

func TestScheduler_FireStartsConfiguredWorkout(t *testing.T) {
	starter := &fakeStarter{}
	config := model.TimerConfig{Exercises: 4, Sets: 3, WorkTime: 20, WorkRest: 10, SetRest: 60}
	s, err := New("@every 1h", starter, config, discardLogger)
	require.NoError(t, err)

	s.fire()
	starter.err = timekeeper.ErrAlreadyRunning
	s.fire()

	assert.Equal(t, []model.TimerConfig{config, config}, starter.calls)
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := New("@every 1h", &fakeStarter{}, model.DefaultTimerConfig(), discardLogger)
	require.NoError(t, err)
	s.Start()
	s.Stop()
}
