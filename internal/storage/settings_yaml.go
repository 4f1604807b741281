package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"intervalcoach/internal/core/model"
)

const settingsFileName = "settings.yaml"

// Durations and flags are pointers: zero and false are valid values,
// absent keeps the default.
type yamlWorkout struct {
	Exercises      int  `yaml:"exercises"`
	Sets           int  `yaml:"sets"`
	WorkSeconds    *int `yaml:"work_seconds"`
	RestSeconds    *int `yaml:"rest_seconds"`
	SetRestSeconds *int `yaml:"set_rest_seconds"`
}

type yamlSettings struct {
	Workout        yamlWorkout `yaml:"workout"`
	HalfwayCue     *bool       `yaml:"halfway_cue"`
	Notifications  *bool       `yaml:"notifications"`
	ShowOverlay    *bool       `yaml:"show_overlay"`
	OverlayOpacity float64     `yaml:"overlay_opacity"`
}

// LoadSettings reads user preferences from YAML in the user config dir.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (model.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return model.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from path.
func LoadSettingsFile(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML in the user config dir.
func SaveSettings(appName string, settings model.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to path.
func SaveSettingsFile(path string, settings model.Settings) error {
	if err := settings.Workout.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		Workout: yamlWorkout{
			Exercises:      settings.Workout.Exercises,
			Sets:           settings.Workout.Sets,
			WorkSeconds:    &settings.Workout.WorkTime,
			RestSeconds:    &settings.Workout.WorkRest,
			SetRestSeconds: &settings.Workout.SetRest,
		},
		HalfwayCue:     &settings.HalfwayCue,
		Notifications:  &settings.Notifications,
		ShowOverlay:    &settings.ShowOverlay,
		OverlayOpacity: settings.OverlayOpacity,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.Workout.Exercises > 0 {
		settings.Workout.Exercises = fileData.Workout.Exercises
	}
	if fileData.Workout.Sets > 0 {
		settings.Workout.Sets = fileData.Workout.Sets
	}
	applySeconds(&settings.Workout.WorkTime, fileData.Workout.WorkSeconds)
	applySeconds(&settings.Workout.WorkRest, fileData.Workout.RestSeconds)
	applySeconds(&settings.Workout.SetRest, fileData.Workout.SetRestSeconds)

	if fileData.OverlayOpacity >= 0.5 && fileData.OverlayOpacity <= 1 {
		settings.OverlayOpacity = fileData.OverlayOpacity
	}

	applyFlag(&settings.HalfwayCue, fileData.HalfwayCue)
	applyFlag(&settings.Notifications, fileData.Notifications)
	applyFlag(&settings.ShowOverlay, fileData.ShowOverlay)
}

func applySeconds(target *int, value *int) {
	if value != nil && *value >= 0 {
		*target = *value
	}
}

func applyFlag(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
