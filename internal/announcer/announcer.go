// Package announcer turns timer notifications into audible or visual cues.
package announcer

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"intervalcoach/internal/core/eventhub"
	"intervalcoach/internal/core/timekeeper"
)

// Cue names a pre-recorded announcement.
type Cue string

const (
	CueTimerSet  Cue = "timer-set"
	CueCountdown Cue = "countdown"
	CuePrepare   Cue = "prepare"
	CueHalfway   Cue = "halfway"
	CueAllDone   Cue = "all-done"
)

const (
	countdownAt = 3
	prepareAt   = 5
	// Work phases this short get no halfway cue; it would collide with the countdown.
	halfwayMinLength = 10
)

// Player renders a cue.
type Player interface {
	Play(cue Cue) error
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(Cue) error

func (fn PlayerFunc) Play(cue Cue) error { return fn(cue) }

// Options configures an Announcer.
type Options struct {
	Halfway bool
	Logger  *slog.Logger
}

// CuesFor returns the cues due for tick.
func CuesFor(tick timekeeper.TickEvent, halfway bool) []Cue {
	var cues []Cue
	if tick.Remaining == countdownAt {
		cues = append(cues, CueCountdown)
	}
	if tick.Remaining == prepareAt && (tick.Phase == timekeeper.PhaseRest || tick.Phase == timekeeper.PhasePreparation) {
		cues = append(cues, CuePrepare)
	}
	// Ticks land on whole seconds; for odd lengths play half a second early.
	if halfway && tick.Phase == timekeeper.PhaseWork && tick.Duration() > halfwayMinLength &&
		(tick.Elapsed == tick.Remaining || tick.Elapsed+1 == tick.Remaining) {
		cues = append(cues, CueHalfway)
	}
	return cues
}

type attachment struct {
	started eventhub.Subscription
	tick    eventhub.Subscription
	ended   eventhub.Subscription
}

// Announcer listens to one or more TimeKeepers and plays cues.
type Announcer struct {
	player  Player
	halfway bool
	logger  *slog.Logger

	mu       sync.Mutex
	attached map[*timekeeper.TimeKeeper]attachment
}

// New creates an Announcer that plays through player.
func New(player Player, options Options) *Announcer {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Announcer{
		player:   player,
		halfway:  options.Halfway,
		logger:   logger,
		attached: make(map[*timekeeper.TimeKeeper]attachment),
	}
}

// Attach subscribes to keeper. Attaching twice is a no-op.
func (announcer *Announcer) Attach(keeper *timekeeper.TimeKeeper) {
	announcer.mu.Lock()
	defer announcer.mu.Unlock()
	if _, ok := announcer.attached[keeper]; ok {
		return
	}
	announcer.attached[keeper] = attachment{
		started: keeper.Started.Subscribe(announcer.onStarted),
		tick:    keeper.Tick.Subscribe(announcer.onTick),
		ended:   keeper.Ended.Subscribe(announcer.onEnded),
	}
}

// Detach removes the subscriptions made by Attach.
func (announcer *Announcer) Detach(keeper *timekeeper.TimeKeeper) {
	announcer.mu.Lock()
	defer announcer.mu.Unlock()
	subs, ok := announcer.attached[keeper]
	if !ok {
		return
	}
	keeper.Started.Unsubscribe(subs.started)
	keeper.Tick.Unsubscribe(subs.tick)
	keeper.Ended.Unsubscribe(subs.ended)
	delete(announcer.attached, keeper)
}

func (announcer *Announcer) onStarted(timekeeper.RunInfo) {
	announcer.play(CueTimerSet)
}

func (announcer *Announcer) onTick(tick timekeeper.TickEvent) {
	announcer.logger.Debug("tick",
		slog.String("phase", tick.Phase.String()),
		slog.Int("elapsed", tick.Elapsed),
		slog.Int("remaining", tick.Remaining),
	)
	for _, cue := range CuesFor(tick, announcer.halfway) {
		announcer.play(cue)
	}
}

func (announcer *Announcer) onEnded(timekeeper.RunInfo) {
	announcer.play(CueAllDone)
}

func (announcer *Announcer) play(cue Cue) {
	if err := announcer.player.Play(cue); err != nil {
		announcer.logger.Warn("play cue", slog.String("cue", string(cue)), slog.String("error", err.Error()))
	}
}

// LogPlayer writes cues to a logger.
func LogPlayer(logger *slog.Logger) Player {
	return PlayerFunc(func(cue Cue) error {
		logger.Info("cue", slog.String("cue", string(cue)))
		return nil
	})
}

// BellPlayer rings the terminal bell and prints the cue name.
func BellPlayer(out io.Writer) Player {
	var mu sync.Mutex
	return PlayerFunc(func(cue Cue) error {
		mu.Lock()
		defer mu.Unlock()
		if _, err := fmt.Fprintf(out, "\a>> %s\n", cue); err != nil {
			return fmt.Errorf("ring bell: %w", err)
		}
		return nil
	})
}

// MultiPlayer plays every cue on each player in turn and returns the
// first error.
func MultiPlayer(players ...Player) Player {
	return PlayerFunc(func(cue Cue) error {
		var first error
		for _, player := range players {
			if err := player.Play(cue); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}
