package model

// Settings defines editable user preferences for the desktop coach.
type Settings struct {
	Workout TimerConfig

	HalfwayCue    bool
	Notifications bool

	ShowOverlay    bool
	OverlayOpacity float64
}

// DefaultSettings returns default settings for the coach.
func DefaultSettings() Settings {
	return Settings{
		Workout:        DefaultTimerConfig(),
		HalfwayCue:     true,
		Notifications:  true,
		ShowOverlay:    true,
		OverlayOpacity: 0.85,
	}
}
