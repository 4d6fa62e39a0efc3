package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	DefaultProfile  = "default"
	DefaultRegion   = "us-east-1"
	DefaultSecretID = "ssh-keys"
)

type Config struct {
	AWS    AWSConfig    `toml:"aws" json:"aws"`
	Secret SecretConfig `toml:"secret" json:"secret"`
	Put    PutConfig    `toml:"put" json:"put"`
	SSO    SSOConfig    `toml:"sso" json:"sso"`
}

type AWSConfig struct {
	Profile string `toml:"profile" json:"profile"`
	Region  string `toml:"region" json:"region"`
}

type SecretConfig struct {
	ID string `toml:"id" json:"id"`
}

type PutConfig struct {
	Exclude []string `toml:"exclude" json:"exclude"`
}

type SSOConfig struct {
	StartURL string `toml:"start_url" json:"start_url"`
	Region   string `toml:"region" json:"region"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		AWS: AWSConfig{
			Profile: DefaultProfile,
			Region:  DefaultRegion,
		},
		Secret: SecretConfig{
			ID: DefaultSecretID,
		},
	}
}

// Load reads the config file at path on top of Defaults().
func Load(path string) (*Config, error) {
	config := Defaults()

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No file: built-in defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	default:
		if err := LoadTOML(path, config); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	// An explicitly empty value in the file falls back to the default.
	if config.AWS.Profile == "" {
		config.AWS.Profile = DefaultProfile
	}
	if config.AWS.Region == "" {
		config.AWS.Region = DefaultRegion
	}
	if config.Secret.ID == "" {
		config.Secret.ID = DefaultSecretID
	}
	if config.SSO.Region == "" {
		config.SSO.Region = config.AWS.Region
	}

	return config, nil
}

// LoadCurrent loads the config file named by Current.
func LoadCurrent() (*Config, error) {
	if Current == nil {
		return nil, fmt.Errorf("settings not initialized")
	}
	return Load(Current.ConfigPath)
}

// Save writes config to path, creating parent directories.
func Save(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config %s: %w", path, err)
	}
	return nil
}
