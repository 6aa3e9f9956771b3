// Package config provides application configuration management.
// Configuration is loaded from environment variables, optionally seeded
// from a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"3000"`

	// User API
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	// Backend selects the endpoint group: "jpa" or "mybatis".
	Backend string `env:"BACKEND" envDefault:"jpa"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads the given .env files (".env" when none are named), then parses
// environment variables into a Config. Missing .env files are ignored;
// variables already set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Backend != "jpa" && cfg.Backend != "mybatis" {
		return nil, fmt.Errorf("invalid BACKEND %q: want jpa or mybatis", cfg.Backend)
	}
	return cfg, nil
}
