// Package config loads configuration from an optional YAML file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the shell's settings.
type Config struct {
	// Preferences
	PrefsPath string

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string

	// Session
	HistoryLimit   int
	MatrixDuration time.Duration

	// Viewers
	Wrap int
}

// fileConfig mirrors Config for the YAML file. Pointers tell unset keys apart.
type fileConfig struct {
	PrefsPath      *string `yaml:"prefs_path"`
	LogLevel       *string `yaml:"log_level"`
	LogFormat      *string `yaml:"log_format"`
	LogOutput      *string `yaml:"log_output"`
	HistoryLimit   *int    `yaml:"history_limit"`
	MatrixDuration *string `yaml:"matrix_duration"`
	Wrap           *int    `yaml:"wrap"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PrefsPath:      filepath.Join(userDir(os.UserConfigDir), "psh", "prefs.db"),
		LogLevel:       "warn",
		LogFormat:      "console",
		LogOutput:      filepath.Join(userDir(os.UserCacheDir), "psh", "psh.log"),
		HistoryLimit:   500,
		MatrixDuration: 5 * time.Second,
		Wrap:           80,
	}
}

// Load builds the configuration: defaults, then the YAML file named by path
// (or PSH_CONFIG when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("PSH_CONFIG")
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.PrefsPath = envOr("PSH_PREFS_PATH", cfg.PrefsPath)
	cfg.LogLevel = envOr("PSH_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("PSH_LOG_FORMAT", cfg.LogFormat)
	cfg.LogOutput = envOr("PSH_LOG_OUTPUT", cfg.LogOutput)
	cfg.HistoryLimit = envInt("PSH_HISTORY_LIMIT", cfg.HistoryLimit)
	cfg.MatrixDuration = envDuration("PSH_MATRIX_DURATION", cfg.MatrixDuration)
	cfg.Wrap = envInt("PSH_WRAP", cfg.Wrap)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}

	setString(&c.PrefsPath, f.PrefsPath)
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.LogFormat, f.LogFormat)
	setString(&c.LogOutput, f.LogOutput)
	if f.HistoryLimit != nil {
		c.HistoryLimit = *f.HistoryLimit
	}
	if f.Wrap != nil {
		c.Wrap = *f.Wrap
	}
	if f.MatrixDuration != nil {
		d, err := time.ParseDuration(*f.MatrixDuration)
		if err != nil {
			return fmt.Errorf("config: %s: matrix_duration: %w", path, err)
		}
		c.MatrixDuration = d
	}
	return nil
}

func (c *Config) validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: negative history limit %d", c.HistoryLimit)
	}
	if c.MatrixDuration <= 0 {
		return fmt.Errorf("config: matrix duration must be positive, got %s", c.MatrixDuration)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func userDir(f func() (string, error)) string {
	dir, err := f()
	if err != nil {
		return os.TempDir()
	}
	return dir
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
