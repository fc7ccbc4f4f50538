// Package config handles YAML configuration for the inventory tool.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure. Every field has a default, so
// running without a config file works.
type Config struct {
	Output   string      `yaml:"output"`
	PageSize int32       `yaml:"page_size"`
	Watch    WatchConfig `yaml:"watch"`
	Log      LogConfig   `yaml:"log"`
}

// WatchConfig holds settings for the interval collection mode.
type WatchConfig struct {
	IntervalStr string        `yaml:"interval"`
	Interval    time.Duration `yaml:"-"`
	MetricsAddr string `yaml:"metrics_addr"`
	StorePath   string `yaml:"store_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	if err := parseInterval(cfg); err != nil {
		// applyDefaults only writes parseable durations.
		panic(err)
	}
	return cfg
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := parseInterval(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Output == "" {
		cfg.Output = "instance_results.json"
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 25
	}
	if cfg.Watch.IntervalStr == "" {
		cfg.Watch.IntervalStr = "5m"
	}
	if cfg.Watch.MetricsAddr == "" {
		cfg.Watch.MetricsAddr = ":9090"
	}
	if cfg.Watch.StorePath == "" {
		cfg.Watch.StorePath = "inventory.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func parseInterval(cfg *Config) error {
	d, err := time.ParseDuration(cfg.Watch.IntervalStr)
	if err != nil {
		return fmt.Errorf("parse interval %q: %w", cfg.Watch.IntervalStr, err)
	}
	cfg.Watch.Interval = d
	return nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	// DescribeInstances accepts MaxResults between 5 and 1000.
	if c.PageSize < 5 || c.PageSize > 1000 {
		return fmt.Errorf("page_size must be between 5 and 1000 (got %d)", c.PageSize)
	}
	if c.Watch.Interval < time.Second {
		return fmt.Errorf("watch interval must be at least 1s (got %s)", c.Watch.Interval)
	}
	return nil
}
