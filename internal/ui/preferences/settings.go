package preferences

import (
	"time"

	"respite/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkInterval  time.Duration
	PreNoticeLead time.Duration
	BreakDuration time.Duration
	Enabled       bool

	IdleEnabled   bool
	IdleThreshold time.Duration

	LaunchAtLogin bool
}

// DefaultSettings returns default settings for Respite.
func DefaultSettings() Settings {
	return Settings{
		WorkInterval:  25 * time.Minute,
		PreNoticeLead: 15 * time.Second,
		BreakDuration: 5 * time.Minute,
		Enabled:       true,
		IdleEnabled:   true,
		IdleThreshold: 5 * time.Minute,
		LaunchAtLogin: false,
	}
}

// SchedulerConfig converts settings to the scheduler's configuration
// document.
func (settings Settings) SchedulerConfig() model.SchedulerConfig {
	return model.SchedulerConfig{
		WorkInterval:         settings.WorkInterval,
		PreNoticeLead:        settings.PreNoticeLead,
		BreakDuration:        settings.BreakDuration,
		Enabled:              settings.Enabled,
		IdleDetectionEnabled: settings.IdleEnabled,
		IdleThreshold:        settings.IdleThreshold,
		IdlePollInterval:     5 * time.Second,
	}
}
