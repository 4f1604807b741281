package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervalcoach/internal/core/model"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg := Load(v)

	assert.Equal(t, model.DefaultTimerConfig(), cfg.Workout())
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.HalfwayCue)
	assert.Empty(t, cfg.Schedule)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intervalcoach.yaml")
	content := "exercises: 4\nsets: 3\nwork_time: 45\ntick_interval: 500ms\nschedule: \"0 7 * * *\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("INTERVALCOACH_WORK_REST", "12")

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("intervalcoach")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg := Load(v)
	assert.Equal(t, model.TimerConfig{Exercises: 4, Sets: 3, WorkTime: 45, WorkRest: 12, SetRest: 20}, cfg.Workout())
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "0 7 * * *", cfg.Schedule)
}
