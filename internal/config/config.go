// Package config loads server settings from a YAML file with environment
// overrides. Missing files are not an error: everything has a usable default.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/localtoolkit/localtoolkit/internal/logging"
)

// EnvConfigPath names the environment variable that points at a config file
// when no --config flag is given.
const EnvConfigPath = "LOCALTOOLKIT_CONFIG"

// defaultPath is looked up in the working directory as a last resort.
const defaultPath = "localtoolkit.yaml"

// AllowedDir grants the filesystem tools access to one directory tree.
type AllowedDir struct {
	Path        string   `yaml:"path"`
	Permissions []string `yaml:"permissions"`
}

// FilesystemConfig scopes what the filesystem tools may touch. With no
// allowed_dirs the filesystem tools refuse every path.
type FilesystemConfig struct {
	AllowedDirs    []AllowedDir `yaml:"allowed_dirs"`
	SecurityLogDir string       `yaml:"security_log_dir"`
}

// AppleScriptConfig tunes the automation bridge.
type AppleScriptConfig struct {
	DefaultTimeoutSeconds int `yaml:"default_timeout_seconds"`
}

// Config is the full server configuration.
type Config struct {
	Filesystem  FilesystemConfig  `yaml:"filesystem"`
	AppleScript AppleScriptConfig `yaml:"applescript"`
	Debug       bool              `yaml:"debug"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		AppleScript: AppleScriptConfig{DefaultTimeoutSeconds: 30},
	}
}

// DefaultTimeout converts the configured bridge timeout to a duration.
func (c *Config) DefaultTimeout() time.Duration {
	if c.AppleScript.DefaultTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.AppleScript.DefaultTimeoutSeconds) * time.Second
}

// Load resolves and parses the configuration. Resolution order: the explicit
// path (when non-empty), then the LOCALTOOLKIT_CONFIG environment variable,
// then ./localtoolkit.yaml, then built-in defaults. An explicit path that
// cannot be read is an error; the fallback locations are optional.
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		return loadFile(explicit)
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		cfg, err := loadFile(envPath)
		if err != nil {
			logging.Warn("config", "cannot load %s=%s: %v, using defaults", EnvConfigPath, envPath, err)
			return Default(), nil
		}
		return cfg, nil
	}

	if _, err := os.Stat(defaultPath); err == nil {
		return loadFile(defaultPath)
	}

	return Default(), nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	logging.Info("config", "loaded configuration from %s", path)
	return cfg, nil
}
