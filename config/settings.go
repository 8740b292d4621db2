package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GetSettingsFilePath returns the path to settings.toml inside configDir
func GetSettingsFilePath(configDir string) string {
	return filepath.Join(configDir, "settings.toml")
}

// LoadSettings reads settings.toml, creating the commented template on first run.
func LoadSettings(configDir string) (*Settings, error) {
	settingsPath := GetSettingsFilePath(configDir)

	if !FileExists(settingsPath) {
		if err := CreateDefaultSettings(configDir); err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
		return DefaultSettings(), nil
	}

	cfg := DefaultSettings()
	if _, err := toml.DecodeFile(settingsPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	return cfg, nil
}

func CreateDefaultSettings(configDir string) error {
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	settingsPath := GetSettingsFilePath(configDir)
	if FileExists(settingsPath) {
		return nil
	}

	if err := os.WriteFile(settingsPath, []byte(GenerateSettingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
