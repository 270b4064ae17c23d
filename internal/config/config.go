// Package config loads dirsize settings from a YAML file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"dirsize/internal/logging"
)

// Defaults match the classic disk-cleanup puzzle parameters.
const (
	DefaultThreshold    uint64 = 100000
	DefaultCapacity     uint64 = 70000000
	DefaultRequiredFree uint64 = 30000000
)

// Config holds all dirsize configuration.
type Config struct {
	Query   QueryConfig   `yaml:"query"`
	Disk    DiskConfig    `yaml:"disk"`
	Logging LoggingConfig `yaml:"logging"`
	List    ListConfig    `yaml:"list"`
	Mount   MountConfig   `yaml:"mount"`
}

// QueryConfig configures the bounded-sum query.
type QueryConfig struct {
	Threshold uint64 `yaml:"threshold"`
}

// DiskConfig describes the disk the transcript was taken from.
type DiskConfig struct {
	Capacity     uint64 `yaml:"capacity"`
	RequiredFree uint64 `yaml:"required_free"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // ERROR, WARN, INFO, DEBUG, TRACE
}

// ListConfig holds default glob filters for directory listings.
type ListConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// MountConfig configures the FUSE view.
type MountConfig struct {
	AllowOther bool `yaml:"allow_other"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Query: QueryConfig{Threshold: DefaultThreshold},
		Disk: DiskConfig{
			Capacity:     DefaultCapacity,
			RequiredFree: DefaultRequiredFree,
		},
		Logging: LoggingConfig{Level: "INFO"},
	}
}

// Load reads the config at path on top of the defaults. An empty path or a
// missing file yields the defaults. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// Defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	overrides := []struct {
		env    string
		target *uint64
	}{
		{"DIRSIZE_THRESHOLD", &c.Query.Threshold},
		{"DIRSIZE_CAPACITY", &c.Disk.Capacity},
		{"DIRSIZE_REQUIRED_FREE", &c.Disk.RequiredFree},
	}
	for _, o := range overrides {
		raw := os.Getenv(o.env)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", o.env, raw, err)
		}
		*o.target = v
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Disk.Capacity == 0 {
		return fmt.Errorf("disk.capacity must be positive")
	}
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("invalid logging.level: %q (valid: ERROR, WARN, INFO, DEBUG, TRACE)", c.Logging.Level)
	}
	return nil
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.LogLevel {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}
