// Package notify shows announcer cues as desktop notifications.
package notify

import (
	"fyne.io/fyne/v2"

	"intervalcoach/internal/announcer"
)

const title = "IntervalCoach"

// Message returns the notification text for cue, or "" when the cue is
// too frequent to be worth a notification.
func Message(cue announcer.Cue) string {
	switch cue {
	case announcer.CueTimerSet:
		return "Timer set. Get ready!"
	case announcer.CuePrepare:
		return "Get ready, next round in 5 seconds."
	case announcer.CueHalfway:
		return "Halfway there!"
	case announcer.CueAllDone:
		return "All done. Great workout!"
	default:
		return ""
	}
}

// Player sends cues through the app's notification service.
func Player(app fyne.App) announcer.Player {
	return announcer.PlayerFunc(func(cue announcer.Cue) error {
		message := Message(cue)
		if message == "" {
			return nil
		}
		app.SendNotification(fyne.NewNotification(title, message))
		return nil
	})
}
