// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	OutputsDir string `env:"GENSTATS_OUTPUTS_DIR" envDefault:"./outputs"`
	FilePrefix string `env:"GENSTATS_FILE_PREFIX" envDefault:"output"`
	ServerHost string `env:"GENSTATS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"GENSTATS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"GENSTATS_ENV" envDefault:"development"`
	LogLevel   string `env:"GENSTATS_LOG_LEVEL" envDefault:"info"`

	// Report tuning
	TopUsers int `env:"GENSTATS_TOP_USERS" envDefault:"5"` // leaderboard size

	// Rate limiting for the public endpoints
	RateLimitRPS   float64 `env:"GENSTATS_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"GENSTATS_RATE_LIMIT_BURST" envDefault:"20"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.FilePrefix == "" {
		return nil, fmt.Errorf("GENSTATS_FILE_PREFIX must not be empty")
	}
	if cfg.TopUsers < 1 {
		return nil, fmt.Errorf("GENSTATS_TOP_USERS must be at least 1, got %d", cfg.TopUsers)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("rate limit settings must be positive, got rps=%v burst=%d",
			cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	return cfg, nil
}
