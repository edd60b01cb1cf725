package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// useTempConfig points ConfigFilePath at a fresh file for the duration of the test
func useTempConfig(t *testing.T) string {
	t.Helper()
	originalPath := ConfigFilePath
	ConfigFilePath = filepath.Join(t.TempDir(), "nested", "config.yml")
	t.Cleanup(func() {
		ConfigFilePath = originalPath
	})
	return ConfigFilePath
}

// TestNewConfigManager tests the constructor
func TestNewConfigManager(t *testing.T) {
	// Act
	manager := NewConfigManager()

	// Assert
	if manager == nil {
		t.Error("Expected non-nil ConfigManager")
	}
}

// TestConfigManager_LastLogin_NoConfig tests reading when no file exists
func TestConfigManager_LastLogin_NoConfig(t *testing.T) {
	// Arrange
	useTempConfig(t)
	manager := NewConfigManager()

	// Act & Assert
	if got := manager.LastLogin(); got != "" {
		t.Errorf("Expected empty last login, got %q", got)
	}
}

// TestConfigManager_UpdateLastLogin_NewConfig tests the first write
func TestConfigManager_UpdateLastLogin_NewConfig(t *testing.T) {
	// Arrange
	path := useTempConfig(t)
	manager := NewConfigManager()
	before := time.Now()

	// Act
	err := manager.UpdateLastLogin("alice")

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("Expected config file to be created: %v", statErr)
	}
	cfg, err := readConfig()
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if cfg.LastLogin != "alice" {
		t.Errorf("Expected last login 'alice', got %q", cfg.LastLogin)
	}
	if cfg.LastUpdated.Before(before) {
		t.Errorf("Expected LastUpdated to be refreshed, got %v", cfg.LastUpdated)
	}
	if cfg.Cooldown.Ticks != 60 {
		t.Errorf("Expected defaults to be written alongside, got %d ticks", cfg.Cooldown.Ticks)
	}
	if manager.LastLogin() != "alice" {
		t.Errorf("Expected LastLogin to read back 'alice', got %q", manager.LastLogin())
	}
}

// TestConfigManager_UpdateLastLogin_PreservesExistingData tests that other settings survive
func TestConfigManager_UpdateLastLogin_PreservesExistingData(t *testing.T) {
	// Arrange
	useTempConfig(t)
	manager := NewConfigManager()
	cfg := Defaults()
	cfg.Cooldown.Ticks = 90
	cfg.Provider.URL = "https://example.test/login"
	if err := writeConfig(cfg); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Act
	if err := manager.UpdateLastLogin("bob"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Assert
	got, err := readConfig()
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if got.Cooldown.Ticks != 90 {
		t.Errorf("Expected cooldown ticks preserved, got %d", got.Cooldown.Ticks)
	}
	if got.Provider.URL != "https://example.test/login" {
		t.Errorf("Expected provider URL preserved, got %q", got.Provider.URL)
	}
	if got.LastLogin != "bob" {
		t.Errorf("Expected last login 'bob', got %q", got.LastLogin)
	}
}

// TestConfigManager_UpdateLastLogin_CorruptConfig tests that a broken file is not overwritten
func TestConfigManager_UpdateLastLogin_CorruptConfig(t *testing.T) {
	// Arrange
	path := useTempConfig(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("cooldown: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	manager := NewConfigManager()

	// Act
	err := manager.UpdateLastLogin("alice")

	// Assert
	if err == nil {
		t.Error("Expected an error for a corrupt config file")
	}
}

// TestConfigManager_Load_AppliesEnv tests that environment overrides win over the file
func TestConfigManager_Load_AppliesEnv(t *testing.T) {
	// Arrange
	useTempConfig(t)
	t.Setenv(EnvProviderURL, "https://override.test/")
	manager := NewConfigManager()

	// Act
	cfg, err := manager.Load()

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Provider.URL != "https://override.test/" {
		t.Errorf("Expected env override, got %q", cfg.Provider.URL)
	}
}
