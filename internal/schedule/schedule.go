// Package schedule starts workouts on a cron schedule.
package schedule

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"intervalcoach/internal/core/model"
	"intervalcoach/internal/core/timekeeper"
)

// Starter begins a workout run.
type Starter interface {
	Start(config model.TimerConfig) error
}

// Scheduler fires Starter.Start whenever the cron expression matches.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	starter  Starter
	config   model.TimerConfig
	logger   *slog.Logger
}

// New parses a standard five-field cron expression.
func New(expr string, starter Starter, config model.TimerConfig, logger *slog.Logger) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		starter:  starter,
		config:   config,
		logger:   logger,
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.fire))
	return s, nil
}

// Start runs the cron loop in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("workout schedule armed", slog.Time("next_run", s.Next(time.Now())))
}

// Stop halts the cron loop and waits for a firing job to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Next returns the first activation after now.
func (s *Scheduler) Next(now time.Time) time.Time {
	return s.schedule.Next(now)
}

func (s *Scheduler) fire() {
	err := s.starter.Start(s.config)
	switch {
	case err == nil:
		s.logger.Info("scheduled workout started", slog.Time("next_run", s.Next(time.Now())))
	case errors.Is(err, timekeeper.ErrAlreadyRunning):
		s.logger.Warn("scheduled workout skipped, timer busy")
	default:
		s.logger.Error("scheduled workout failed", slog.String("error", err.Error()))
	}
}
