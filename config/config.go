// Package config loads the ckbtypes command configuration from YAML.
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/blockberries/ckb/types"
)

// Output formats.
const (
	OutputJSON  = "json"
	OutputTable = "table"
)

// Config is the root of the YAML file.
type Config struct {
	// Workers bounds parallel decodes in batch commands.
	Workers int `yaml:"workers"`
	// LogLevel is a zap level name: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// Output is json or table.
	Output string `yaml:"output"`
	// CapacityUnit is the unit amounts are shown in: shannon or ckbyte.
	CapacityUnit string `yaml:"capacity_unit"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Workers:      4,
		LogLevel:     "info",
		Output:       OutputJSON,
		CapacityUnit: "ckbyte",
	}
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.Output {
	case OutputJSON, OutputTable:
	default:
		return fmt.Errorf("output must be %q or %q, got %q", OutputJSON, OutputTable, c.Output)
	}
	if _, err := types.ParseCapacityUnit(c.CapacityUnit); err != nil {
		return fmt.Errorf("capacity_unit: %w", err)
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Unit returns the configured capacity unit.
func (c *Config) Unit() types.CapacityUnit {
	u, err := types.ParseCapacityUnit(c.CapacityUnit)
	if err != nil {
		return types.CKByte
	}
	return u
}

// Load reads path, expands ${VAR} references, fills unset fields from
// Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse is Load for in-memory YAML. Environment references are not
// expanded.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
