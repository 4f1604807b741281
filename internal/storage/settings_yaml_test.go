package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervalcoach/internal/core/model"
)

func TestLoadSettingsFile_Missing(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", settingsFileName)
	want := model.Settings{
		Workout:        model.TimerConfig{Exercises: 6, Sets: 3, WorkTime: 40, WorkRest: 0, SetRest: 90},
		HalfwayCue:     false,
		Notifications:  true,
		ShowOverlay:    false,
		OverlayOpacity: 0.7,
	}

	require.NoError(t, SaveSettingsFile(path, want))
	got, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("workout:\n  sets: 5\n  rest_seconds: 0\nnotifications: true\n"), 0o644))

	got, err := LoadSettingsFile(path)
	require.NoError(t, err)

	defaults := model.DefaultTimerConfig()
	assert.Equal(t, 5, got.Workout.Sets)
	assert.Equal(t, 0, got.Workout.WorkRest)
	assert.Equal(t, defaults.WorkTime, got.Workout.WorkTime)
	assert.Equal(t, defaults.Exercises, got.Workout.Exercises)
	assert.Equal(t, 0.85, got.OverlayOpacity)
	assert.True(t, got.HalfwayCue)
	assert.True(t, got.Notifications)
	assert.True(t, got.ShowOverlay)
}

func TestLoadSettingsFile_FlagsOverrideOnlyWhenPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("workout:\n  sets: 5\nshow_overlay: false\n"), 0o644))

	got, err := LoadSettingsFile(path)
	require.NoError(t, err)

	assert.False(t, got.ShowOverlay)
	assert.True(t, got.HalfwayCue)
	assert.True(t, got.Notifications)
}

func TestLoadSettingsFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("workout: [1, 2"), 0o644))

	_, err := LoadSettingsFile(path)
	assert.ErrorContains(t, err, "parse settings yaml")
}

func TestSaveSettingsFile_RejectsInvalidWorkout(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Workout.Sets = 0
	err := SaveSettingsFile(filepath.Join(t.TempDir(), settingsFileName), settings)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestSettingsInUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	settings := model.DefaultSettings()
	settings.Workout.Exercises = 3
	require.NoError(t, SaveSettings("IntervalCoachTest", settings))

	got, err := LoadSettings("IntervalCoachTest")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Workout.Exercises)
}
