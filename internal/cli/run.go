package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"intervalcoach/internal/announcer"
	"intervalcoach/internal/config"
	"intervalcoach/internal/core/timekeeper"
	"intervalcoach/internal/schedule"
	"intervalcoach/internal/telemetry"
	"intervalcoach/internal/ui/overlay"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workout in the terminal",
	Long: `Run a workout in the terminal, printing every tick and ringing the
terminal bell on cues. Ctrl-C stops the workout.

With --schedule the command stays up and starts the workout whenever the
cron expression matches.`,
	RunE: runRun,
}

func init() {
	flags := runCmd.Flags()
	flags.Int("exercises", 9, "work intervals per set")
	flags.Int("sets", 2, "number of sets")
	flags.Int("work", 30, "work interval length in seconds")
	flags.Int("rest", 10, "rest between exercises in seconds")
	flags.Int("set-rest", 20, "rest between sets in seconds")
	flags.Int("rounds", 1, "repeat the whole workout this many times")
	flags.Bool("halfway", true, "announce the halfway point of long work intervals")
	flags.Bool("bell", true, "ring the terminal bell on cues")
	flags.Bool("quiet", false, "do not print every tick")
	flags.String("schedule", "", `cron expression for recurring workouts (e.g. "30 7 * * 1-5")`)

	bindFlag("exercises", flags, "exercises")
	bindFlag("sets", flags, "sets")
	bindFlag("work_time", flags, "work")
	bindFlag("work_rest", flags, "rest")
	bindFlag("set_rest", flags, "set-rest")
	bindFlag("halfway_cue", flags, "halfway")
	bindFlag("schedule", flags, "schedule")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg := config.Load(viper.GetViper())
	logger := buildLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	out := cmd.OutOrStdout()

	rounds, _ := cmd.Flags().GetInt("rounds")
	bell, _ := cmd.Flags().GetBool("bell")
	quiet, _ := cmd.Flags().GetBool("quiet")

	workout := cfg.Workout()
	if err := workout.Validate(); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)

	keeper := timekeeper.New(timekeeper.Config{
		TickInterval: cfg.TickInterval,
		Logger:       logger,
		Diagnostics:  listenerDiagnostics(logger, metrics),
	})
	metrics.Attach(keeper)

	player := announcer.LogPlayer(logger)
	if bell {
		player = announcer.MultiPlayer(announcer.BellPlayer(out), player)
	}
	announcer.New(player, announcer.Options{Halfway: cfg.HalfwayCue, Logger: logger}).Attach(keeper)
	if !quiet {
		attachPrinter(keeper, out)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		telemetry.StartMetricsServer(ctx, cfg.MetricsAddr, registry, logger)
	}

	fmt.Fprintln(out, workout.Describe())

	if cfg.Schedule != "" {
		return runScheduled(ctx, keeper, cfg, logger)
	}

	if err := keeper.Start(workout); err != nil {
		return fmt.Errorf("start workout: %w", err)
	}
	for round := 1; ; round++ {
		if !waitRun(ctx, keeper, logger) {
			return nil
		}
		if round >= rounds {
			break
		}
		logger.Info("next round", slog.Int("round", round+1), slog.Int("rounds", rounds))
		if err := keeper.Restart(); err != nil {
			return fmt.Errorf("restart workout: %w", err)
		}
	}
	fmt.Fprintln(out, "Last interval completed.")
	return nil
}

func runScheduled(ctx context.Context, keeper *timekeeper.TimeKeeper, cfg config.Config, logger *slog.Logger) error {
	scheduler, err := schedule.New(cfg.Schedule, keeper, cfg.Workout(), logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	<-ctx.Done()
	if keeper.Running() {
		_ = keeper.Stop()
	}
	<-keeper.Done()
	logger.Info("schedule stopped")
	return nil
}

// waitRun blocks until the current run ends. It reports false when ctx
// was cancelled first, after stopping the run.
func waitRun(ctx context.Context, keeper *timekeeper.TimeKeeper, logger *slog.Logger) bool {
	select {
	case <-keeper.Done():
		return keeper.State() == timekeeper.StateCompleted
	case <-ctx.Done():
		if err := keeper.Stop(); err != nil {
			logger.Debug("stop", slog.String("error", err.Error()))
		}
		<-keeper.Done()
		logger.Info("workout stopped")
		return false
	}
}

// attachPrinter writes one line per tick to out.
func attachPrinter(keeper *timekeeper.TimeKeeper, out io.Writer) {
	keeper.Tick.Subscribe(func(tick timekeeper.TickEvent) {
		fmt.Fprintf(out, "%-11s %s\n", overlay.PhaseTitle(tick.Phase), overlay.FormatSeconds(tick.Remaining))
	})
	keeper.Ended.Subscribe(func(timekeeper.RunInfo) {
		fmt.Fprintln(out, "All done!")
	})
}
