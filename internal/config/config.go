// Package config loads tool configuration from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all tool configuration.
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset"`
	Densify DensifyConfig `mapstructure:"densify"`
	Query   QueryConfig   `mapstructure:"query"`
	Grid    GridConfig    `mapstructure:"grid"`
	Log     LogConfig     `mapstructure:"log"`
}

type DatasetConfig struct {
	// Elements and Path name override files; empty means the embedded
	// reference dataset.
	Elements string `mapstructure:"elements"`
	Path     string `mapstructure:"path"`
}

type DensifyConfig struct {
	MaxStepKm float64 `mapstructure:"max_step_km"`
}

type QueryConfig struct {
	AltitudeM float64 `mapstructure:"altitude_m"`
}

type GridConfig struct {
	Workers int `mapstructure:"workers"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration: defaults, then an optional config.yaml, then
// LS_UMBRA_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("dataset.elements", "")
	v.SetDefault("dataset.path", "")
	v.SetDefault("densify.max_step_km", 50.0)
	v.SetDefault("query.altitude_m", 0.0)
	v.SetDefault("grid.workers", 4)
	v.SetDefault("log.level", "info")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: LS_UMBRA_DENSIFY_MAX_STEP_KM -> densify.max_step_km
	v.SetEnvPrefix("LS_UMBRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration values are sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Densify.MaxStepKm <= 0 {
		errs = append(errs, fmt.Sprintf("densify.max_step_km must be positive, got %v", c.Densify.MaxStepKm))
	}
	if c.Grid.Workers < 1 {
		errs = append(errs, fmt.Sprintf("grid.workers must be at least 1, got %d", c.Grid.Workers))
	}
	if (c.Dataset.Elements == "") != (c.Dataset.Path == "") {
		errs = append(errs, "dataset.elements and dataset.path must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
