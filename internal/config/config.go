// Package config loads engine configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Logging LogConfig
}

// APIConfig holds persistence API client configuration.
type APIConfig struct {
	BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8000/api/v1"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
}

// SessionConfig holds workspace behavior configuration.
type SessionConfig struct {
	SavedSessionsLimit int `envconfig:"SAVED_SESSIONS_LIMIT" default:"6"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000/api/v1",
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			SavedSessionsLimit: 6,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
