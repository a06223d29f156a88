package config

import (
	"fmt"
	"os"

	"github.com/san-kum/freefall/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrator      = "semi-implicit"
	DefaultDt              = 0.01
	DefaultMaxDuration     = 120.0
	DefaultHistoryCapacity = 500
	DefaultSampleInterval  = 0.03
	DefaultFPS             = 60
	DefaultLogLevel        = "info"
)

type Config struct {
	Params          dynamo.Params `yaml:"params"`
	Integrator      string        `yaml:"integrator"`
	Dt              float64       `yaml:"dt"`
	MaxDuration     float64       `yaml:"max_duration"`
	HistoryCapacity int           `yaml:"history_capacity"`
	SampleInterval  float64       `yaml:"sample_interval"`
	FPS             int           `yaml:"fps"`
	LogLevel        string        `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Params:          dynamo.DefaultParams(),
		Integrator:      DefaultIntegrator,
		Dt:              DefaultDt,
		MaxDuration:     DefaultMaxDuration,
		HistoryCapacity: DefaultHistoryCapacity,
		SampleInterval:  DefaultSampleInterval,
		FPS:             DefaultFPS,
		LogLevel:        DefaultLogLevel,
	}
}

// Load reads a yaml file on top of the defaults, so a file only needs the
// keys it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v: %w", c.Dt, dynamo.ErrInvalidConfig)
	}
	if c.MaxDuration <= 0 {
		return fmt.Errorf("max_duration must be positive, got %v: %w", c.MaxDuration, dynamo.ErrInvalidConfig)
	}
	if c.HistoryCapacity < 0 {
		return fmt.Errorf("history_capacity must be non-negative, got %d: %w", c.HistoryCapacity, dynamo.ErrInvalidConfig)
	}
	if c.SampleInterval < 0 {
		return fmt.Errorf("sample_interval must be non-negative, got %v: %w", c.SampleInterval, dynamo.ErrInvalidConfig)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d: %w", c.FPS, dynamo.ErrInvalidConfig)
	}
	return nil
}
