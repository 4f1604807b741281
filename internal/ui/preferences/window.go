package preferences

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"intervalcoach/internal/core/model"
)

// Window handles the workout settings UI.
type Window struct {
	window        fyne.Window
	settings      model.Settings
	onSave        func(model.Settings)
	exercises     *widget.Entry
	sets          *widget.Entry
	workTime      *widget.Entry
	workRest      *widget.Entry
	setRest       *widget.Entry
	halfway       *widget.Check
	notifications *widget.Check
	overlay       *widget.Check
	opacity       *widget.Slider
}

// New creates a settings window.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("IntervalCoach Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		exercises:     widget.NewEntry(),
		sets:          widget.NewEntry(),
		workTime:      widget.NewEntry(),
		workRest:      widget.NewEntry(),
		setRest:       widget.NewEntry(),
		halfway:       widget.NewCheck("Halfway cue in long work phases", nil),
		notifications: widget.NewCheck("Desktop notifications for cues", nil),
		overlay:       widget.NewCheck("Show countdown window", nil),
		opacity:       widget.NewSlider(0.5, 1),
	}
	prefs.opacity.Step = 0.05

	form := container.NewVBox(
		widget.NewLabelWithStyle("Workout", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.New(layout.NewFormLayout(),
			widget.NewLabel("Exercises per set"), prefs.exercises,
			widget.NewLabel("Sets"), prefs.sets,
			widget.NewLabel("Work (sec)"), prefs.workTime,
			widget.NewLabel("Rest (sec)"), prefs.workRest,
			widget.NewLabel("Rest between sets (sec)"), prefs.setRest,
		),
		widget.NewLabelWithStyle("Cues", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.halfway,
		prefs.notifications,
		prefs.overlay,
		widget.NewLabel("Countdown window opacity"),
		prefs.opacity,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 440))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.exercises.SetText(strconv.Itoa(settings.Workout.Exercises))
	prefs.sets.SetText(strconv.Itoa(settings.Workout.Sets))
	prefs.workTime.SetText(strconv.Itoa(settings.Workout.WorkTime))
	prefs.workRest.SetText(strconv.Itoa(settings.Workout.WorkRest))
	prefs.setRest.SetText(strconv.Itoa(settings.Workout.SetRest))
	prefs.halfway.SetChecked(settings.HalfwayCue)
	prefs.notifications.SetChecked(settings.Notifications)
	prefs.overlay.SetChecked(settings.ShowOverlay)
	prefs.opacity.SetValue(settings.OverlayOpacity)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	workout, err := parseWorkout(prefs.exercises.Text, prefs.sets.Text, prefs.workTime.Text, prefs.workRest.Text, prefs.setRest.Text)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	settings.Workout = workout
	settings.HalfwayCue = prefs.halfway.Checked
	settings.Notifications = prefs.notifications.Checked
	settings.ShowOverlay = prefs.overlay.Checked
	settings.OverlayOpacity = prefs.opacity.Value

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
