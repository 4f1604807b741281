package config

import (
	"time"

	"github.com/spf13/viper"

	"intervalcoach/internal/core/model"
)

// Config holds typed configuration for the coach.
type Config struct {
	LogLevel      string
	LogFormat     string
	Exercises     int
	Sets          int
	WorkTime      int
	WorkRest      int
	SetRest       int
	TickInterval  time.Duration
	HalfwayCue    bool
	Notifications bool
	MetricsAddr   string
	Schedule      string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	workout := model.DefaultTimerConfig()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("exercises", workout.Exercises)
	v.SetDefault("sets", workout.Sets)
	v.SetDefault("work_time", workout.WorkTime)
	v.SetDefault("work_rest", workout.WorkRest)
	v.SetDefault("set_rest", workout.SetRest)
	v.SetDefault("tick_interval", time.Second)
	v.SetDefault("halfway_cue", true)
	v.SetDefault("notifications", true)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("schedule", "")
}

// Load reads all values from the given viper instance.
func Load(v *viper.Viper) Config {
	return Config{
		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		Exercises:     v.GetInt("exercises"),
		Sets:          v.GetInt("sets"),
		WorkTime:      v.GetInt("work_time"),
		WorkRest:      v.GetInt("work_rest"),
		SetRest:       v.GetInt("set_rest"),
		TickInterval:  v.GetDuration("tick_interval"),
		HalfwayCue:    v.GetBool("halfway_cue"),
		Notifications: v.GetBool("notifications"),
		MetricsAddr:   v.GetString("metrics_addr"),
		Schedule:      v.GetString("schedule"),
	}
}

// Workout returns the timer parameters.
func (c Config) Workout() model.TimerConfig {
	return model.TimerConfig{
		Exercises: c.Exercises,
		Sets:      c.Sets,
		WorkTime:  c.WorkTime,
		WorkRest:  c.WorkRest,
		SetRest:   c.SetRest,
	}
}
