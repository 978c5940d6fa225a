package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	ConflictWarn   = "warn"
	ConflictReject = "reject"
)

// Config models planbord.yml.
type Config struct {
	Server struct {
		Listen   string `yaml:"listen"`
		BasePath string `yaml:"base_path"`
	} `yaml:"server"`
	Reservations struct {
		// ConflictPolicy decides what a double-booking does: "warn"
		// records the reservation and flags it, "reject" refuses it.
		ConflictPolicy string `yaml:"conflict_policy"`
	} `yaml:"reservations"`
	Seed struct {
		// File points at a YAML dataset loaded at startup. Empty means
		// the built-in demo dataset.
		File    string `yaml:"file"`
		Disable bool   `yaml:"disable"`
	} `yaml:"seed"`
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("config.server.listen is required")
	}
	switch c.Reservations.ConflictPolicy {
	case ConflictWarn, ConflictReject:
	default:
		return fmt.Errorf("config.reservations.conflict_policy must be 'warn' or 'reject'")
	}
	return nil
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "planbord.yml")
}

// Default returns the default Config struct.
func Default() *Config {
	var cfg Config
	_ = yaml.NewDecoder(bytes.NewBufferString(defaultTemplate)).Decode(&cfg)
	return &cfg
}

// GenerateDefault returns default config YAML.
func GenerateDefault() string {
	return defaultTemplate
}

// FromYAML parses and validates config from raw YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromFile reads YAML config from the given path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}

// LoadOptional returns the default config if the workspace has no
// planbord.yml.
func LoadOptional(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

const defaultTemplate = `server:
  listen: ":8080"
  base_path: /api/v1

reservations:
  conflict_policy: warn

seed:
  file: ""
  disable: false
`
