// Package config loads and validates CLI configuration from YAML files with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the gianna CLI.
type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// IndexConfig fixes the ordered list of document fields to extract text
// from. The list cannot change once an index is built.
type IndexConfig struct {
	Fields []string `yaml:"fields"`
}

// SearchConfig controls result presentation; the index itself is unbounded.
type SearchConfig struct {
	Limit int `yaml:"limit"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the optional Prometheus scrape listener.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-
// variable overrides. Missing values fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Fields: []string{"title", "body"},
		},
		Search: SearchConfig{
			Limit: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

func (c *Config) validate() error {
	if len(c.Index.Fields) == 0 {
		return fmt.Errorf("config: index.fields must name at least one field")
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("config: search.limit must not be negative")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GIANNA_INDEX_FIELDS"); v != "" {
		cfg.Index.Fields = strings.Split(v, ",")
	}
	if v := os.Getenv("GIANNA_SEARCH_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			cfg.Search.Limit = limit
		}
	}
	if v := os.Getenv("GIANNA_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GIANNA_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("GIANNA_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("GIANNA_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
