package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"respite/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkIntervalMinutes  int  `yaml:"work_interval_minutes"`
	PreNoticeLeadSeconds int  `yaml:"pre_notice_lead_seconds"`
	BreakDurationMinutes int  `yaml:"break_duration_minutes"`
	Enabled              bool `yaml:"enabled"`
	IdleEnabled          bool `yaml:"idle_enabled"`
	IdleThresholdMinutes int  `yaml:"idle_threshold_minutes"`
	LaunchAtLogin        bool `yaml:"launch_at_login"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
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

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		WorkIntervalMinutes:  int(settings.WorkInterval / time.Minute),
		PreNoticeLeadSeconds: int(settings.PreNoticeLead / time.Second),
		BreakDurationMinutes: int(settings.BreakDuration / time.Minute),
		Enabled:              settings.Enabled,
		IdleEnabled:          settings.IdleEnabled,
		IdleThresholdMinutes: int(settings.IdleThreshold / time.Minute),
		LaunchAtLogin:        settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
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

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkIntervalMinutes > 0 {
		settings.WorkInterval = time.Duration(fileData.WorkIntervalMinutes) * time.Minute
	}
	// Zero is meaningful here: it disables the pre-break notice.
	if fileData.PreNoticeLeadSeconds >= 0 {
		settings.PreNoticeLead = time.Duration(fileData.PreNoticeLeadSeconds) * time.Second
	}
	if fileData.BreakDurationMinutes > 0 {
		settings.BreakDuration = time.Duration(fileData.BreakDurationMinutes) * time.Minute
	}
	if fileData.IdleThresholdMinutes > 0 {
		settings.IdleThreshold = time.Duration(fileData.IdleThresholdMinutes) * time.Minute
	}

	settings.Enabled = fileData.Enabled
	settings.IdleEnabled = fileData.IdleEnabled
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
