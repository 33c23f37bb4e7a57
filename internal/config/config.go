// Package config loads and validates training run configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the recognized knobs for a training run.
type Config struct {
	HiddenSizes  []int   `yaml:"hidden_sizes"`  // hidden layer widths, in order
	LearningRate float64 `yaml:"learning_rate"` // SGD step size
	Epochs       int     `yaml:"epochs"`        // full passes over the dataset
	BatchSize    int     `yaml:"batch_size"`    // examples per step
	ReportEvery  int     `yaml:"report_every"`  // steps between status lines
	Seed         int64   `yaml:"seed"`          // rng seed for init and shuffling
	Checkpoint   string  `yaml:"checkpoint"`    // path for the trained parameters, empty to skip saving
}

// Overrides captures CLI supplied values; zero values leave the loaded
// config untouched.
type Overrides struct {
	HiddenSizes  []int
	LearningRate float64
	Epochs       int
	BatchSize    int
	ReportEvery  int
	Seed         int64
	Checkpoint   string
}

// Default returns the standard digit-classifier configuration.
func Default() *Config {
	return &Config{
		HiddenSizes:  []int{128, 64},
		LearningRate: 0.01,
		Epochs:       5,
		BatchSize:    32,
		ReportEvery:  100,
		Seed:         42,
	}
}

// Load reads and validates a Config from a YAML file.
//
// Keys missing from the file keep their Default values; unknown keys
// are rejected so a typo cannot silently fall back to a default.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if len(o.HiddenSizes) > 0 {
		c.HiddenSizes = o.HiddenSizes
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.ReportEvery > 0 {
		c.ReportEvery = o.ReportEvery
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Checkpoint != "" {
		c.Checkpoint = o.Checkpoint
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	for i, h := range c.HiddenSizes {
		if h <= 0 {
			return fmt.Errorf("hidden_sizes[%d] must be > 0 (got %d)", i, h)
		}
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if math.IsNaN(c.LearningRate) || math.IsInf(c.LearningRate, 0) {
		return fmt.Errorf("learning_rate must be finite (got %g)", c.LearningRate)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.ReportEvery <= 0 {
		return fmt.Errorf("report_every must be > 0 (got %d)", c.ReportEvery)
	}
	return nil
}
