package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config holds CLI configuration loaded from a YAML file. Flags override
// config values.
type Config struct {
	Output      OutputConfig      `yaml:"output"`
	Render      RenderConfig      `yaml:"render"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Default output directory (empty = same as source)
}

// RenderConfig defines renderer options.
type RenderConfig struct {
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style name (empty = class-based output)
}

// DiagnosticsConfig defines syntax diagnostics options.
type DiagnosticsConfig struct {
	Enabled *bool `yaml:"enabled"` // nil = enabled
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// DiagnosticsEnabled reports whether diagnostics are on (the default).
func (c *Config) DiagnosticsEnabled() bool {
	return c.Diagnostics.Enabled == nil || *c.Diagnostics.Enabled
}

// LoadConfig reads and parses a YAML config file. Unknown fields are
// rejected to surface typos early.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own flag
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}
