package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"respite/internal/ui/preferences"
)

func withTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	withTempConfigDir(t)

	settings, err := LoadSettings("respite-test")
	require.NoError(t, err)
	require.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	withTempConfigDir(t)

	saved := preferences.Settings{
		WorkInterval:  50 * time.Minute,
		PreNoticeLead: 30 * time.Second,
		BreakDuration: 10 * time.Minute,
		Enabled:       true,
		IdleEnabled:   false,
		IdleThreshold: 10 * time.Minute,
		LaunchAtLogin: true,
	}
	require.NoError(t, SaveSettings("respite-test", saved))

	loaded, err := LoadSettings("respite-test")
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestLoadSettingsZeroLeadDisablesNotice(t *testing.T) {
	withTempConfigDir(t)

	saved := preferences.DefaultSettings()
	saved.PreNoticeLead = 0
	require.NoError(t, SaveSettings("respite-test", saved))

	loaded, err := LoadSettings("respite-test")
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), loaded.PreNoticeLead)
}

func TestLoadSettingsIgnoresInvalidDurations(t *testing.T) {
	dir := withTempConfigDir(t)

	configDir := filepath.Join(dir, "respite-test")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	raw := "work_interval_minutes: -3\nbreak_duration_minutes: 0\nenabled: true\nidle_enabled: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, settingsFileName), []byte(raw), 0o644))

	loaded, err := LoadSettings("respite-test")
	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	require.Equal(t, defaults.WorkInterval, loaded.WorkInterval)
	require.Equal(t, defaults.BreakDuration, loaded.BreakDuration)
}

func TestLoadSettingsMalformedYaml(t *testing.T) {
	dir := withTempConfigDir(t)

	configDir := filepath.Join(dir, "respite-test")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, settingsFileName), []byte("{not yaml"), 0o644))

	settings, err := LoadSettings("respite-test")
	require.Error(t, err)
	require.Equal(t, preferences.DefaultSettings(), settings)
}
