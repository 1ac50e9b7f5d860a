// Package config loads easel settings from .env, easel.yaml and EASEL_*
// environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the config directory.
const FileName = "easel.yaml"

// Dir returns the config directory: $EASEL_CONFIG_DIR, else ~/.easel.
func Dir() (string, error) {
	if dir := os.Getenv("EASEL_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".easel"), nil
}

// Config represents the easel configuration
type Config struct {
	DataDir string        `yaml:"data_dir,omitempty"` // Empty means <exe dir>/Data
	Log     LogConfig     `yaml:"log"`
	Sync    SyncConfig    `yaml:"sync"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// SyncConfig controls the watch poll loop.
type SyncConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	PollDuration time.Duration `yaml:"poll_duration"`
}

// MetricsConfig controls the Prometheus endpoint served by watch.
type MetricsConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Sync: SyncConfig{
			PollInterval: 5 * time.Second,
			PollDuration: 60 * time.Second,
		},
	}
}

// LoadConfig reads dir/.env and dir/easel.yaml, then applies EASEL_*
// environment overrides. Missing files are not an error.
func LoadConfig(dir string) (*Config, error) {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := Default()
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := overrideFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) error {
	if v := os.Getenv("EASEL_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("EASEL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("EASEL_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv("EASEL_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	for name, target := range map[string]*time.Duration{
		"EASEL_POLL_INTERVAL": &cfg.Sync.PollInterval,
		"EASEL_POLL_DURATION": &cfg.Sync.PollDuration,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*target = d
	}
	return nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (want console or json)", c.Log.Format)
	}
	if c.Sync.PollInterval <= 0 {
		return fmt.Errorf("sync.poll_interval must be positive")
	}
	if c.Sync.PollDuration < 0 {
		return fmt.Errorf("sync.poll_duration cannot be negative")
	}
	return nil
}

// SaveConfig writes easel.yaml to dir
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
