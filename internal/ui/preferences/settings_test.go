package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerConfigConversion(t *testing.T) {
	settings := Settings{
		WorkInterval:  50 * time.Minute,
		PreNoticeLead: 30 * time.Second,
		BreakDuration: 10 * time.Minute,
		Enabled:       true,
		IdleEnabled:   false,
		IdleThreshold: 8 * time.Minute,
	}

	config := settings.SchedulerConfig()
	require.Equal(t, 50*time.Minute, config.WorkInterval)
	require.Equal(t, 30*time.Second, config.PreNoticeLead)
	require.Equal(t, 10*time.Minute, config.BreakDuration)
	require.True(t, config.Enabled)
	require.False(t, config.IdleDetectionEnabled)
	require.Equal(t, 8*time.Minute, config.IdleThreshold)
}

func TestDefaultSettingsAreSchedulable(t *testing.T) {
	config := DefaultSettings().SchedulerConfig()
	require.Equal(t, config, config.Normalized())
}
