// Package config loads the roadmap tool configuration from a YAML
// file. Every field has a working default so the tool runs with no
// config at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kahu/roadmap/pkg/types"
)

// Config maps the YAML configuration file.
type Config struct {
	Timeline struct {
		Zoom string `yaml:"zoom"`
		// OverrideEndDate optionally pins the right edge of the
		// timeline (DD-MM-YYYY). Empty or unparsable values fall back
		// to the engine's default lookahead.
		OverrideEndDate string `yaml:"override_end_date"`
	} `yaml:"timeline"`

	// Filters maps status tag names to visibility.
	Filters map[string]bool `yaml:"filters"`

	Watch struct {
		DebounceMs int `yaml:"debounce_ms"`
	} `yaml:"watch"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when no file is given:
// month zoom, archived items hidden, metrics off.
func Default() *Config {
	cfg := &Config{}
	cfg.Timeline.Zoom = string(types.ZoomMonth)
	cfg.Filters = map[string]bool{}
	for tag, on := range types.DefaultStatusFilter() {
		cfg.Filters[string(tag)] = on
	}
	cfg.Watch.DebounceMs = 250
	cfg.Metrics.Port = 9090
	return cfg
}

// Load reads and validates a config file. Fields left out of the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := types.ParseZoom(c.Timeline.Zoom); err != nil {
		return err
	}
	if c.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative")
	}
	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return fmt.Errorf("metrics.port %d out of range", c.Metrics.Port)
	}
	return nil
}

// Zoom returns the configured zoom level.
func (c *Config) Zoom() types.ZoomLevel {
	z, err := types.ParseZoom(c.Timeline.Zoom)
	if err != nil {
		return types.ZoomMonth
	}
	return z
}

// StatusFilter converts the filters section into the engine's type.
func (c *Config) StatusFilter() types.StatusFilter {
	f := make(types.StatusFilter, len(c.Filters))
	for tag, on := range c.Filters {
		f[types.StatusTag(tag)] = on
	}
	return f
}
