package model

import "time"

// SchedulerConfig contains runtime settings for the break scheduler.
// Changes are delivered as a whole document, never as single field
// pokes.
type SchedulerConfig struct {
	// WorkInterval is the focused time between breaks.
	WorkInterval time.Duration
	// PreNoticeLead is how long before the break the pre-break notice
	// appears. Zero disables the notice.
	PreNoticeLead time.Duration
	// BreakDuration is how long the break screen counts down.
	BreakDuration time.Duration
	// Enabled gates all scheduling. When false the scheduler holds no
	// timers.
	Enabled bool

	IdleDetectionEnabled bool
	IdleThreshold        time.Duration
	IdlePollInterval     time.Duration
}

// DefaultSchedulerConfig returns the stock configuration.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		WorkInterval:         25 * time.Minute,
		PreNoticeLead:        15 * time.Second,
		BreakDuration:        5 * time.Minute,
		Enabled:              true,
		IdleDetectionEnabled: true,
		IdleThreshold:        5 * time.Minute,
		IdlePollInterval:     5 * time.Second,
	}
}

// Normalized returns a copy with unusable durations replaced by
// defaults. A zero PreNoticeLead is kept: it means "no notice".
func (config SchedulerConfig) Normalized() SchedulerConfig {
	defaults := DefaultSchedulerConfig()
	if config.WorkInterval <= 0 {
		config.WorkInterval = defaults.WorkInterval
	}
	if config.BreakDuration <= 0 {
		config.BreakDuration = defaults.BreakDuration
	}
	if config.PreNoticeLead < 0 {
		config.PreNoticeLead = 0
	}
	if config.PreNoticeLead >= config.WorkInterval {
		config.PreNoticeLead = defaults.PreNoticeLead
	}
	if config.IdleThreshold <= 0 {
		config.IdleThreshold = defaults.IdleThreshold
	}
	if config.IdlePollInterval <= 0 {
		config.IdlePollInterval = defaults.IdlePollInterval
	}
	return config
}
