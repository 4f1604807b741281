package resources

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// TrayIcon names the tray icon variants.
type TrayIcon int

const (
	IconIdle TrayIcon = iota
	IconWork
	IconRest
)

// Icon returns the tray icon for the given variant. Icons come from the
// active fyne theme so the tray follows light/dark mode.
func Icon(icon TrayIcon) fyne.Resource {
	switch icon {
	case IconWork:
		return theme.MediaPlayIcon()
	case IconRest:
		return theme.MediaPauseIcon()
	default:
		return theme.MediaStopIcon()
	}
}

// AppIcon returns the application icon.
func AppIcon() fyne.Resource {
	return theme.MediaRecordIcon()
}
