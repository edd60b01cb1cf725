package commands

import (
	"os"
	"path/filepath"

	"logingate/config"

	"gopkg.in/yaml.v3"
)

func writeTestConfig(path string, cfg config.Config) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
