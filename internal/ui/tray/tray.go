package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "IntervalCoach"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart       func()
	OnRestart     func()
	OnStop        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	workoutItem *fyne.MenuItem
	startItem   *fyne.MenuItem
	restartItem *fyne.MenuItem
	stopItem    *fyne.MenuItem
	prefsItem   *fyne.MenuItem
	quitItem    *fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true
	manager.workoutItem = fyne.NewMenuItem("", nil)
	manager.workoutItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start workout", invoke(&manager.callbacks.OnStart))
	manager.restartItem = fyne.NewMenuItem("Restart last workout", invoke(&manager.callbacks.OnRestart))
	manager.stopItem = fyne.NewMenuItem("Stop", invoke(&manager.callbacks.OnStop))
	manager.stopItem.Disabled = true
	manager.prefsItem = fyne.NewMenuItem("Workout settings", invoke(&manager.callbacks.OnPreferences))
	manager.quitItem = fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	manager.quitItem.IsQuit = true

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetWorkout shows the configured workout summary.
func (manager *Manager) SetWorkout(description string) {
	manager.workoutItem.Label = description
	manager.refreshMenu()
}

// SetRunning toggles run-related menu items.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	manager.startItem.Disabled = running
	manager.restartItem.Disabled = running
	manager.stopItem.Disabled = !running
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		manager.workoutItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.restartItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		manager.prefsItem,
		manager.quitItem,
	))
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
