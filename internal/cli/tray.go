package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"intervalcoach/internal/announcer"
	"intervalcoach/internal/config"
	"intervalcoach/internal/core/model"
	"intervalcoach/internal/core/timekeeper"
	"intervalcoach/internal/platform"
	"intervalcoach/internal/storage"
	"intervalcoach/internal/telemetry"
	"intervalcoach/internal/ui/notify"
	"intervalcoach/internal/ui/overlay"
	"intervalcoach/internal/ui/preferences"
	"intervalcoach/internal/ui/tray"
	"intervalcoach/resources"
)

func runTray(cmd *cobra.Command, _ []string) error {
	cfg := config.Load(viper.GetViper())
	logger := buildLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrInstanceRunning) {
			logger.Warn("already running", slog.String("error", err.Error()))
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("settings not loaded, using defaults", slog.String("error", err.Error()))
		settings = model.DefaultSettings()
	}

	fyneApp := app.NewWithID("com.intervalcoach.app")
	fyneApp.SetIcon(resources.AppIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	trayWindow := fyneApp.NewWindow("IntervalCoach")
	trayWindow.SetContent(widget.NewLabel("IntervalCoach is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)
	keeper := timekeeper.New(timekeeper.Config{
		TickInterval: cfg.TickInterval,
		Logger:       logger,
		Diagnostics:  listenerDiagnostics(logger, metrics),
	})
	metrics.Attach(keeper)

	ctx := cmd.Context()
	if cfg.MetricsAddr != "" {
		telemetry.StartMetricsServer(ctx, cfg.MetricsAddr, registry, logger)
	}

	var cues *announcer.Announcer
	attachCues := func() {
		if cues != nil {
			cues.Detach(keeper)
		}
		player := announcer.LogPlayer(logger)
		if settings.Notifications {
			player = announcer.MultiPlayer(notify.Player(fyneApp), player)
		}
		cues = announcer.New(player, announcer.Options{Halfway: settings.HalfwayCue, Logger: logger})
		cues.Attach(keeper)
	}
	attachCues()

	overlayWindow := overlay.New(fyneApp, overlay.Config{Opacity: opacityToAlpha(settings.OverlayOpacity)})

	var trayManager *tray.Manager
	showIdle := func(status string) {
		trayManager.SetRunning(false)
		trayManager.SetStatus(status)
		desktopApp.SetSystemTrayIcon(resources.Icon(resources.IconIdle))
		overlayWindow.Hide()
	}
	startWorkout := func(start func() error) {
		if err := start(); err != nil {
			logger.Error("start workout", slog.String("error", err.Error()))
			return
		}
		trayManager.SetRunning(true)
	}
	stopWorkout := func() {
		if err := keeper.Stop(); err != nil {
			logger.Debug("stop", slog.String("error", err.Error()))
			return
		}
		// Stopping raises nothing, so the UI resets here.
		showIdle("stopped")
	}
	overlayWindow.SetOnStop(stopWorkout)

	prefsWindow := preferences.New(fyneApp, settings, func(updated model.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			logger.Error("save settings", slog.String("error", err.Error()))
		}
		attachCues()
		overlayWindow.UpdateConfig(overlay.Config{Opacity: opacityToAlpha(settings.OverlayOpacity)})
		trayManager.SetWorkout(settings.Workout.Describe())
	})

	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnStart: func() {
			startWorkout(func() error { return keeper.Start(settings.Workout) })
		},
		OnRestart: func() {
			startWorkout(keeper.Restart)
		},
		OnStop: stopWorkout,
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnQuit: func() {
			_ = keeper.Stop()
			fyneApp.Quit()
		},
	})
	trayManager.SetWorkout(settings.Workout.Describe())
	desktopApp.SetSystemTrayIcon(resources.Icon(resources.IconIdle))

	events, detach := keeper.Subscribe(8)
	defer detach()
	go func() {
		for event := range events {
			fyne.Do(func() {
				handleEvent(event, settings, overlayWindow, trayManager, desktopApp, showIdle)
			})
		}
	}()

	fyneApp.Run()
	return nil
}

func handleEvent(event timekeeper.Event, settings model.Settings, overlayWindow *overlay.Window, trayManager *tray.Manager, desktopApp desktop.App, showIdle func(string)) {
	switch event.Type {
	case timekeeper.EventStarted:
		trayManager.SetRunning(true)
		trayManager.SetStatus("get ready")
		if settings.ShowOverlay {
			overlayWindow.Show(settings.Workout.Describe())
		}
	case timekeeper.EventTick:
		tick := timekeeper.TickEvent{Phase: event.Phase, Elapsed: event.Elapsed, Remaining: event.Remaining}
		trayManager.SetStatus(fmt.Sprintf("%s %s", event.Phase, overlay.FormatSeconds(event.Remaining)))
		desktopApp.SetSystemTrayIcon(resources.Icon(trayIconFor(event.Phase)))
		if settings.ShowOverlay {
			overlayWindow.SetTick(tick)
		}
	case timekeeper.EventEnded:
		showIdle("all done")
	}
}

func trayIconFor(phase timekeeper.Phase) resources.TrayIcon {
	switch phase {
	case timekeeper.PhaseWork:
		return resources.IconWork
	case timekeeper.PhaseRest:
		return resources.IconRest
	default:
		return resources.IconIdle
	}
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
