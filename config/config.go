package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"logingate/submission"

	"gopkg.in/yaml.v3"
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		ConfigFilePath = filepath.Join(".logingate", "config.yml")
		return
	}
	ConfigFilePath = filepath.Join(homeDir, ".logingate", "config.yml")
}

// ConfigFilePath is where the configuration lives. Tests point it elsewhere.
var ConfigFilePath string

// Provider kinds
const (
	ProviderHTTP     = "http"
	ProviderSupabase = "supabase"
)

// DefaultProviderURL is the endpoint the HTTP provider calls when none is set
const DefaultProviderURL = "https://randomuser.me/api/"

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config represents the application configuration
type Config struct {
	Cooldown    CooldownConfig `yaml:"cooldown"`
	Provider    ProviderConfig `yaml:"provider"`
	Tracing     TracingConfig  `yaml:"tracing"`
	LastLogin   string         `yaml:"last_login"`
	LastUpdated time.Time      `yaml:"last_updated"`
}

// CooldownConfig controls the lockout after a failed attempt
type CooldownConfig struct {
	Ticks        int           `yaml:"ticks"`
	ErrorTicks   int           `yaml:"error_ticks"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// ProviderConfig selects and configures the login backend
type ProviderConfig struct {
	Kind        string `yaml:"kind"`
	URL         string `yaml:"url"`
	Alternate   bool   `yaml:"alternate"` // fail every second attempt, for demos
	SupabaseURL string `yaml:"supabase_url"`
	SupabaseKey string `yaml:"supabase_key"`
	Table       string `yaml:"table"`
	Column      string `yaml:"column"`
}

// TracingConfig controls the local event trail
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	LocalDir    string `yaml:"local_dir"`
	MaxSessions int    `yaml:"max_sessions"`
}

// Defaults returns the configuration used when no file exists
func Defaults() Config {
	sub := submission.DefaultConfig()
	return Config{
		Cooldown: CooldownConfig{
			Ticks:        sub.CooldownTicks,
			ErrorTicks:   sub.ErrorTicks,
			TickInterval: sub.TickInterval,
		},
		Provider: ProviderConfig{
			Kind:      ProviderHTTP,
			URL:       DefaultProviderURL,
			Alternate: true,
			Table:     "logins",
			Column:    "login",
		},
		Tracing: TracingConfig{
			Enabled:     true,
			LocalDir:    "~/.logingate/traces",
			MaxSessions: 10,
		},
	}
}

// Submission returns the controller timing parameters
func (c Config) Submission() submission.Config {
	return submission.Config{
		CooldownTicks: c.Cooldown.Ticks,
		ErrorTicks:    c.Cooldown.ErrorTicks,
		TickInterval:  c.Cooldown.TickInterval,
	}
}

// Validate checks the configuration and returns every issue found
func (c Config) Validate() error {
	var errs []error

	if err := c.Submission().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("cooldown: %w", err))
	}

	switch c.Provider.Kind {
	case ProviderHTTP:
		if c.Provider.URL == "" {
			errs = append(errs, errors.New("provider.url must be set for the http provider"))
		}
	case ProviderSupabase:
		if c.Provider.SupabaseURL == "" || c.Provider.SupabaseKey == "" {
			errs = append(errs, errors.New("provider.supabase_url and provider.supabase_key must be set (or SUPABASE_URL/SUPABASE_KEY)"))
		}
		if !identifierRe.MatchString(c.Provider.Table) || !identifierRe.MatchString(c.Provider.Column) {
			errs = append(errs, errors.New("provider.table and provider.column must be plain identifiers"))
		}
	default:
		errs = append(errs, fmt.Errorf("provider.kind must be %q or %q, got %q", ProviderHTTP, ProviderSupabase, c.Provider.Kind))
	}

	if c.Tracing.Enabled && c.Tracing.LocalDir == "" {
		errs = append(errs, errors.New("tracing.local_dir must be set when tracing is enabled"))
	}
	if c.Tracing.MaxSessions < 0 {
		errs = append(errs, errors.New("tracing.max_sessions must be >= 0"))
	}

	return errors.Join(errs...)
}

// readConfig reads the configuration from the config file
// This is private - use ConfigManager methods instead
func readConfig() (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(ConfigFilePath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", ConfigFilePath, err)
	}
	return cfg, nil
}

// writeConfig writes the configuration to the config file
// This is private - use ConfigManager methods instead
func writeConfig(cfg Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(ConfigFilePath), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	return os.WriteFile(ConfigFilePath, data, 0o600)
}

// Load reads the config file, falling back to defaults when it does not exist
func Load() (Config, error) {
	cfg, err := readConfig()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	return cfg, nil
}

// InitFile writes the default configuration. It refuses to overwrite an
// existing file.
func InitFile() (string, error) {
	if _, err := os.Stat(ConfigFilePath); err == nil {
		return "", fmt.Errorf("config: %s already exists", ConfigFilePath)
	}
	if err := writeConfig(Defaults()); err != nil {
		return "", err
	}
	return ConfigFilePath, nil
}
