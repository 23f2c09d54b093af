// SPDX-License-Identifier: EPL-2.0

// Package config reads the command line settings from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. AUDTEMPO_LOG_LEVEL.
const Prefix = "audtempo"

// Config holds the settings of the audtempo command.
type Config struct {
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"text"`
	BufferSize int    `envconfig:"BUFFER_SIZE" default:"8192"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.BufferSize <= 0 {
		return nil, fmt.Errorf("failed to load config: buffer size must be positive, got %d", cfg.BufferSize)
	}
	return &cfg, nil
}

// Default returns the configuration used when no variable is set.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		BufferSize: 8192,
	}
}
