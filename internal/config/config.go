/*
PURPOSE:
  Defines the configuration structure and loading logic for target2mic.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Input resistance file, optional PBP file, output path.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Flags override file values (see internal/cli/predict.go).
  - Worker count and pattern cache size are tunable for large batches.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default config file falls back to defaults.
  - Validate() reports unusable values before any file is read.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should be sensible.

USAGE:
  cfg, err := config.Load("target2mic.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig().

RELATED FILES:
  - internal/cli/predict.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for target2mic.
type Config struct {
	ResFile    string `yaml:"res_file"`
	PBPFile    string `yaml:"pbp_file"`
	Output     string `yaml:"output"`
	JSONOutput string `yaml:"json_output"`

	// Workers bounds how many isolates are predicted concurrently.
	Workers          int `yaml:"workers"`
	PatternCacheSize int `yaml:"pattern_cache_size"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output:           "mic_predictions.tsv",
		Workers:          4,
		PatternCacheSize: 128,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// DefaultFiles are searched, in order, when no config path is given.
var DefaultFiles = []string{"target2mic.yaml", "mic_predictor.yaml"}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration is usable for a prediction run.
func (c *Config) Validate() error {
	var errs []error
	if c.ResFile == "" {
		errs = append(errs, errors.New("res_file is required"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.PatternCacheSize < 1 {
		errs = append(errs, fmt.Errorf("pattern_cache_size must be positive, got %d", c.PatternCacheSize))
	}
	return errors.Join(errs...)
}
