// Package config handles reading and writing .datachat/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .datachat/config.yaml.
type Config struct {
	Version int          `yaml:"version"`
	API     APIConfig    `yaml:"api"`
	Export  ExportConfig `yaml:"export"`
	Log     LogConfig    `yaml:"log"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ExportConfig controls where chat exports are written.
type ExportConfig struct {
	Dir string `yaml:"dir"` // empty means current working directory
}

// LogConfig controls the JSONL event log.
type LogConfig struct {
	Enabled bool `yaml:"enabled"`
}

const configDir = ".datachat"
const configFile = "config.yaml"

// ReadConfig reads .datachat/config.yaml from the given base directory.
// dir is typically the user's home directory, not .datachat/ itself.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .datachat/config.yaml in the given base directory.
// Creates the .datachat/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
// The 70 second timeout accommodates slow schema-analysis calls.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api/v1",
			TimeoutSeconds: 70,
		},
		Log: LogConfig{
			Enabled: true,
		},
	}
}

// Timeout returns the configured API timeout as a duration, falling back to
// the default when unset or negative.
func (c *Config) Timeout() int {
	if c.API.TimeoutSeconds <= 0 {
		return 70
	}
	return c.API.TimeoutSeconds
}
