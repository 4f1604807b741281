package overlay

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"intervalcoach/internal/core/timekeeper"
)

// Config defines overlay visuals.
type Config struct {
	Opacity uint8
}

// Window is a small always-visible countdown for the running workout.
type Window struct {
	window     fyne.Window
	config     Config
	background *canvas.Rectangle
	phaseLabel *canvas.Text
	timerLabel *canvas.Text
	infoLabel  *canvas.Text
	progress   *widget.ProgressBar
	stopButton *widget.Button
	onStop     func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

var (
	workColor        = color.NRGBA{R: 232, G: 92, B: 66, A: 255}
	restColor        = color.NRGBA{R: 80, G: 180, B: 120, A: 255}
	preparationColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	textColor        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// New creates the countdown window; it stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("IntervalCoach")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	phaseLabel := canvas.NewText("Get ready", preparationColor)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 21

	timerLabel := canvas.NewText("--:--", textColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 48

	infoLabel := canvas.NewText("", textColor)
	infoLabel.Alignment = fyne.TextAlignCenter
	infoLabel.TextSize = 14

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	overlay := &Window{
		window:     window,
		config:     config,
		background: background,
		phaseLabel: phaseLabel,
		timerLabel: timerLabel,
		infoLabel:  infoLabel,
		progress:   progress,
	}
	overlay.stopButton = widget.NewButton("Stop", func() {
		if overlay.onStop != nil {
			overlay.onStop()
		}
	})

	content := container.NewVBox(phaseLabel, timerLabel, infoLabel, progress, overlay.stopButton)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(260, 220))
	return overlay
}

// SetOnStop sets the Stop button handler.
func (overlay *Window) SetOnStop(handler func()) {
	overlay.onStop = handler
}

// Show displays the window for a new run. Safe from any goroutine.
func (overlay *Window) Show(description string) {
	fyne.Do(func() {
		overlay.phaseLabel.Text = "Get ready"
		overlay.phaseLabel.Color = preparationColor
		overlay.phaseLabel.Refresh()
		overlay.timerLabel.Text = "--:--"
		overlay.timerLabel.Refresh()
		overlay.infoLabel.Text = description
		overlay.infoLabel.Refresh()
		overlay.progress.SetValue(0)
		overlay.window.Show()
		overlay.window.CenterOnScreen()
	})
}

// Hide closes the window. Safe from any goroutine.
func (overlay *Window) Hide() {
	fyne.Do(func() {
		overlay.window.Hide()
	})
}

// SetTick updates the countdown. Safe from any goroutine.
func (overlay *Window) SetTick(tick timekeeper.TickEvent) {
	fyne.Do(func() {
		overlay.phaseLabel.Text = PhaseTitle(tick.Phase)
		overlay.phaseLabel.Color = phaseColor(tick.Phase)
		overlay.phaseLabel.Refresh()
		overlay.timerLabel.Text = FormatSeconds(tick.Remaining)
		overlay.timerLabel.Refresh()
		overlay.progress.SetValue(Progress(tick))
	})
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	fyne.Do(func() {
		overlay.config = config
		overlay.background.FillColor = color.NRGBA{A: config.Opacity}
		canvas.Refresh(overlay.background)
	})
}

// PhaseTitle returns the heading shown for phase.
func PhaseTitle(phase timekeeper.Phase) string {
	switch phase {
	case timekeeper.PhasePreparation:
		return "Get ready"
	case timekeeper.PhaseWork:
		return "Work"
	case timekeeper.PhaseRest:
		return "Rest"
	default:
		return ""
	}
}

// FormatSeconds renders seconds as mm:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress returns the completed fraction of the tick's phase.
func Progress(tick timekeeper.TickEvent) float64 {
	total := tick.Duration()
	if total <= 0 {
		return 1
	}
	return float64(tick.Elapsed) / float64(total)
}

func phaseColor(phase timekeeper.Phase) color.Color {
	switch phase {
	case timekeeper.PhaseWork:
		return workColor
	case timekeeper.PhaseRest:
		return restColor
	default:
		return preparationColor
	}
}
