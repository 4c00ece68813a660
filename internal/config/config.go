// Package config reads the clubhouse server configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's runtime parameters. Environment variables take
// precedence over flags.
type Config struct {
	RunAddress  string `env:"RUN_ADDRESS"`
	DatabaseURI string `env:"DATABASE_URI"`
	JWTSecret   string `env:"JWT_SECRET"`

	TokenTTL time.Duration `env:"TOKEN_TTL"`

	// Login limiter knobs.
	LoginMaxFails int           `env:"LOGIN_MAX_FAILS"`
	LoginWindow   time.Duration `env:"LOGIN_WINDOW"`
	LoginLock     time.Duration `env:"LOGIN_LOCK"`
}

// Parse reads configuration from command-line flags and environment variables.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabaseURI := cfg.DatabaseURI
	envJWTSecret := cfg.JWTSecret

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.JWTSecret, "s", "", "token signing secret")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabaseURI != "" {
		cfg.DatabaseURI = envDatabaseURI
	}
	if envJWTSecret != "" {
		cfg.JWTSecret = envJWTSecret
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 30 * 24 * time.Hour
	}
	if cfg.LoginMaxFails <= 0 {
		cfg.LoginMaxFails = 10
	}
	if cfg.LoginWindow <= 0 {
		cfg.LoginWindow = 15 * time.Minute
	}
	if cfg.LoginLock <= 0 {
		cfg.LoginLock = 15 * time.Minute
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("token signing secret is required")
	}

	return cfg, nil
}
