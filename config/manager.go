package config

import (
	"errors"
	"os"
	"time"
)

// ConfigManager handles configuration operations
type ConfigManager struct{}

// NewConfigManager creates a new config manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{}
}

// Load returns the current configuration with environment overrides applied
func (c *ConfigManager) Load() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return cfg, err
	}
	if err := LoadEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LastLogin returns the last confirmed login, or "" if none was stored
func (c *ConfigManager) LastLogin() string {
	cfg, err := readConfig()
	if err != nil {
		return ""
	}
	return cfg.LastLogin
}

// UpdateLastLogin records a confirmed login while preserving other settings
func (c *ConfigManager) UpdateLastLogin(login string) error {
	cfg, err := readConfig()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg.LastLogin = login
	cfg.LastUpdated = time.Now()

	return writeConfig(cfg)
}
