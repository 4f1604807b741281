package timekeeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"intervalcoach/internal/core/eventhub"
	"intervalcoach/internal/core/model"
)

var (
	// ErrAlreadyRunning is returned when starting while a run is active.
	ErrAlreadyRunning = errors.New("timer already running")
	// ErrNotRunning is returned when stopping without an active run.
	ErrNotRunning = errors.New("timer not running")
	// ErrNoConfiguration is returned by Restart before any Start.
	ErrNoConfiguration = errors.New("timer has no configuration")
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	// TickInterval is the wall-clock length of one tick. Defaults to a second.
	TickInterval time.Duration
	// Preparation is the countdown length in ticks. Defaults to DefaultPreparation.
	Preparation int
	Logger      *slog.Logger
	// Diagnostics receives listener failures from all three hubs.
	Diagnostics eventhub.Diagnostics
}

type run struct {
	id     string
	config model.TimerConfig
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	prev   <-chan struct{}
}

// TimeKeeper is a state machine that drives an interval workout.
type TimeKeeper struct {
	mu         sync.Mutex
	options    Config
	logger     *slog.Logger
	config     model.TimerConfig
	configured bool
	state      RunState
	current    *run

	Started *eventhub.Hub[RunInfo]
	Tick    *eventhub.Hub[TickEvent]
	Ended   *eventhub.Hub[RunInfo]

	// runTicks follows Tick with the emitting run's ID for channel observers.
	runTicks *eventhub.Hub[runTick]
}

type runTick struct {
	runID string
	tick  TickEvent
}

// New creates an idle TimeKeeper.
func New(options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Preparation <= 0 {
		options.Preparation = DefaultPreparation
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	diagnostics := options.Diagnostics
	if diagnostics == nil {
		diagnostics = func(kind string, err error) {
			logger.Error("timer listener failed", slog.String("kind", kind), slog.String("error", err.Error()))
		}
	}
	hubOption := eventhub.WithDiagnostics(diagnostics)

	return &TimeKeeper{
		options: options,
		logger:  logger,
		state:   StateIdle,
		Started: eventhub.New[RunInfo](string(EventStarted), hubOption),
		Tick:    eventhub.New[TickEvent](string(EventTick), hubOption),
		Ended:   eventhub.New[RunInfo](string(EventEnded), hubOption),

		runTicks: eventhub.New[runTick](string(EventTick), hubOption),
	}
}

// Start records config and begins a new run. The started notification is
// raised before Start returns.
func (keeper *TimeKeeper) Start(config model.TimerConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	keeper.mu.Lock()
	if keeper.state == StateRunning {
		keeper.mu.Unlock()
		return ErrAlreadyRunning
	}
	keeper.config = config
	keeper.configured = true
	current := keeper.beginLocked()
	keeper.mu.Unlock()

	keeper.launch(current)
	return nil
}

// Restart begins a new run with the most recent configuration.
func (keeper *TimeKeeper) Restart() error {
	keeper.mu.Lock()
	if !keeper.configured {
		keeper.mu.Unlock()
		return ErrNoConfiguration
	}
	if keeper.state == StateRunning {
		keeper.mu.Unlock()
		return ErrAlreadyRunning
	}
	current := keeper.beginLocked()
	keeper.mu.Unlock()

	keeper.launch(current)
	return nil
}

// Stop cancels the active run. No ended notification is raised. Stop does
// not wait for the run goroutine; use Done for that.
func (keeper *TimeKeeper) Stop() error {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state != StateRunning {
		return ErrNotRunning
	}
	keeper.current.cancel()
	keeper.state = StateCancelled
	keeper.logger.Info("timer stopped", slog.String("run_id", keeper.current.id))
	return nil
}

// Running reports whether a run is active.
func (keeper *TimeKeeper) Running() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state == StateRunning
}

// State returns the lifecycle state.
func (keeper *TimeKeeper) State() RunState {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Config returns the last configuration passed to Start.
func (keeper *TimeKeeper) Config() (model.TimerConfig, bool) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config, keeper.configured
}

// Describe summarizes the current configuration.
func (keeper *TimeKeeper) Describe() string {
	config, ok := keeper.Config()
	if !ok {
		return "no workout configured"
	}
	return config.Describe()
}

// Done returns a channel closed once the latest run's goroutine has exited.
func (keeper *TimeKeeper) Done() <-chan struct{} {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.current == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return keeper.current.done
}

// Subscribe registers a channel observer for all notifications. Sends are
// non-blocking; events are dropped when the buffer is full. The returned
// function detaches the observer and closes the channel.
func (keeper *TimeKeeper) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	var mu sync.Mutex
	closed := false
	send := func(event Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- event:
		default:
		}
	}

	started := keeper.Started.Subscribe(func(info RunInfo) {
		send(Event{Type: EventStarted, RunID: info.ID, At: info.At})
	})
	tick := keeper.runTicks.Subscribe(func(raised runTick) {
		send(Event{
			Type:      EventTick,
			RunID:     raised.runID,
			Phase:     raised.tick.Phase,
			Elapsed:   raised.tick.Elapsed,
			Remaining: raised.tick.Remaining,
			At:        time.Now(),
		})
	})
	ended := keeper.Ended.Subscribe(func(info RunInfo) {
		send(Event{Type: EventEnded, RunID: info.ID, At: info.At})
	})

	var once sync.Once
	detach := func() {
		once.Do(func() {
			keeper.Started.Unsubscribe(started)
			keeper.runTicks.Unsubscribe(tick)
			keeper.Ended.Unsubscribe(ended)
			mu.Lock()
			closed = true
			close(ch)
			mu.Unlock()
		})
	}
	return ch, detach
}

func (keeper *TimeKeeper) beginLocked() *run {
	ctx, cancel := context.WithCancel(context.Background())
	next := &run{
		id:     uuid.NewString(),
		config: keeper.config,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	if keeper.current != nil {
		next.prev = keeper.current.done
	}
	keeper.current = next
	keeper.state = StateRunning
	return next
}

// launch raises started on the caller's goroutine, then hands the run to
// its own goroutine.
func (keeper *TimeKeeper) launch(current *run) {
	keeper.logger.Info("timer started",
		slog.String("run_id", current.id),
		slog.String("workout", current.config.Describe()),
	)
	keeper.Started.Raise(RunInfo{ID: current.id, Config: current.config, At: time.Now()})
	go keeper.run(current)
}

func (keeper *TimeKeeper) run(current *run) {
	defer close(current.done)
	defer current.cancel()

	// The previous run is completed or cancelled but may still be unwinding
	// a dispatch; never let two runs emit at once.
	if current.prev != nil {
		<-current.prev
	}

	interval := keeper.options.TickInterval
	for _, segment := range Plan(current.config, keeper.options.Preparation) {
		for elapsed := 1; elapsed <= segment.Length; elapsed++ {
			if !sleepWithContext(current.ctx, interval) {
				return
			}
			tick := TickEvent{
				Phase:     segment.Phase,
				Elapsed:   elapsed,
				Remaining: segment.Length - elapsed,
			}
			keeper.Tick.Raise(tick)
			keeper.runTicks.Raise(runTick{runID: current.id, tick: tick})
		}
	}

	// One more tick so the last tick and ended never coincide.
	if !sleepWithContext(current.ctx, interval) {
		return
	}

	keeper.mu.Lock()
	if keeper.current != current || current.ctx.Err() != nil {
		keeper.mu.Unlock()
		return
	}
	keeper.mu.Unlock()

	keeper.logger.Info("timer completed", slog.String("run_id", current.id))
	keeper.Ended.Raise(RunInfo{ID: current.id, Config: current.config, At: time.Now()})

	// The run stays active until every ended listener has returned.
	keeper.mu.Lock()
	if keeper.current == current && keeper.state == StateRunning {
		keeper.state = StateCompleted
	}
	keeper.mu.Unlock()
}

// sleepWithContext waits for duration and reports false if ctx ended first.
func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return ctx.Err() == nil
	}
}
