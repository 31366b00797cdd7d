// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by setDefaults.
const (
	DefaultCount      = 10_000
	DefaultWorkers    = 9
	DefaultMode       = "concurrent"
	DefaultBufferSize = 4096
	DefaultLogLevel   = "info"
)

// Config is the root configuration structure.
type Config struct {
	Generate GenerateConfig `yaml:"generate"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// GenerateConfig configures bulk identifier generation.
type GenerateConfig struct {
	Count         int    `yaml:"count"`
	Workers       int    `yaml:"workers"`     // 1-9
	Mode          string `yaml:"mode"`        // "concurrent" or "sequential"
	BufferSize    int    `yaml:"buffer_size"` // writer channel capacity
	Output        string `yaml:"output"`      // file path, empty or "-" = stdout
	ProgressEvery int64  `yaml:"progress_every"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "console", or empty to detect a terminal
}

// MetricsConfig configures Prometheus metrics export.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"` // textfile collector output path
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	cfg := newConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	TAXID_COUNT            - Identifiers to generate (default: 10000)
//	TAXID_WORKERS          - Generator workers, 1-9 (default: 9)
//	TAXID_MODE             - concurrent or sequential (default: concurrent)
//	TAXID_BUFFER_SIZE      - Writer channel capacity (default: 4096)
//	TAXID_OUTPUT           - Output file (default: stdout)
//	TAXID_PROGRESS_EVERY   - Log progress every N identifiers (default: off)
//	TAXID_LOG_LEVEL        - Log level: debug, info, warn, error (default: info)
//	TAXID_LOG_FORMAT       - Log format: json or console (default: detect)
//	TAXID_METRICS_ENABLED  - Export metrics after a run (default: false)
//	TAXID_METRICS_FILE     - Metrics textfile path
func LoadFromEnv() (*Config, error) {
	cfg := newConfig()

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback loads path if it exists, otherwise builds the
// configuration from environment variables and defaults.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// Validate checks cfg after command-line overrides have been applied.
func (c *Config) Validate() error {
	return validate(c)
}

// newConfig returns the base every load starts from. Count is preset here
// rather than in setDefaults because zero is a valid explicit count.
func newConfig() Config {
	return Config{Generate: GenerateConfig{Count: DefaultCount}}
}

// applyEnvOverrides applies TAXID_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Generation
	if v := os.Getenv("TAXID_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generate.Count = n
		}
	}
	if v := os.Getenv("TAXID_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generate.Workers = n
		}
	}
	if v := os.Getenv("TAXID_MODE"); v != "" {
		cfg.Generate.Mode = v
	}
	if v := os.Getenv("TAXID_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Generate.BufferSize = n
		}
	}
	if v := os.Getenv("TAXID_OUTPUT"); v != "" {
		cfg.Generate.Output = v
	}
	if v := os.Getenv("TAXID_PROGRESS_EVERY"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Generate.ProgressEvery = n
		}
	}

	// Logging
	if v := os.Getenv("TAXID_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TAXID_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Metrics
	if v := os.Getenv("TAXID_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("TAXID_METRICS_FILE"); v != "" {
		cfg.Metrics.File = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Generate.Workers == 0 {
		cfg.Generate.Workers = DefaultWorkers
	}
	if cfg.Generate.Mode == "" {
		cfg.Generate.Mode = DefaultMode
	}
	if cfg.Generate.BufferSize == 0 {
		cfg.Generate.BufferSize = DefaultBufferSize
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}

	// A file path implies export.
	if cfg.Metrics.File != "" {
		cfg.Metrics.Enabled = true
	}
}

func validate(cfg *Config) error {
	g := cfg.Generate
	if g.Count < 0 {
		return fmt.Errorf("generate.count must not be negative, got %d", g.Count)
	}
	if g.Workers < 1 || g.Workers > 9 {
		return fmt.Errorf("generate.workers must be between 1 and 9, got %d", g.Workers)
	}

	validModes := map[string]bool{"concurrent": true, "sequential": true}
	if !validModes[g.Mode] {
		return fmt.Errorf("generate.mode must be 'concurrent' or 'sequential', got %q", g.Mode)
	}
	if g.BufferSize < 1 {
		return fmt.Errorf("generate.buffer_size must be positive, got %d", g.BufferSize)
	}
	if g.ProgressEvery < 0 {
		return fmt.Errorf("generate.progress_every must not be negative, got %d", g.ProgressEvery)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"": true, "json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled && cfg.Metrics.File == "" {
		return fmt.Errorf("metrics.file is required when metrics.enabled is true")
	}

	return nil
}
