package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "ssh-keys"

type Settings struct {
	ConfigPath string
	DataPath   string
}

// Current holds the settings used by the running command. Tests replace it
// to point at temporary directories.
var Current *Settings

// DefaultSettings resolves the standard config and data locations.
func DefaultSettings() (*Settings, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("error getting home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigPath: filepath.Join(configDir, appName, "config.toml"),
		DataPath:   filepath.Join(dataDir, appName),
	}, nil
}

// InitSettings sets Current from the environment, unless a caller already
// set it. configPath overrides the config file location when non-empty.
func InitSettings(configPath string) error {
	if Current == nil {
		settings, err := DefaultSettings()
		if err != nil {
			return err
		}
		Current = settings
	}
	if configPath != "" {
		Current.ConfigPath = configPath
	}
	return nil
}
