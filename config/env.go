package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvProvider    = "LOGINGATE_PROVIDER"
	EnvProviderURL = "LOGINGATE_PROVIDER_URL"
	EnvSupabaseURL = "SUPABASE_URL"
	EnvSupabaseKey = "SUPABASE_KEY"
)

// LoadEnv loads .env from the working directory if present and applies the
// environment overrides to cfg.
func LoadEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	applyEnv(cfg)
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvProvider); v != "" {
		cfg.Provider.Kind = v
	}
	if v := os.Getenv(EnvProviderURL); v != "" {
		cfg.Provider.URL = v
	}
	if v := os.Getenv(EnvSupabaseURL); v != "" {
		cfg.Provider.SupabaseURL = v
	}
	if v := os.Getenv(EnvSupabaseKey); v != "" {
		cfg.Provider.SupabaseKey = v
	}
}
