// Copyright (c) 2026 fb-admin. All rights reserved.
// Author: mohammad-keath-zaytowna

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first with 'joho/godotenv' when present.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (storage, HTTP client) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mohammad-keath-zaytowna/fb-admin/pkg/query"
)

// # Storage Drivers

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageFile     = "file"
)

// # Configuration Schema

// Config holds all runtime configuration for the dashboard server and console.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Shop backend (all business logic of record lives there)
	BackendURL     string        `env:"BACKEND_URL"     envDefault:"http://localhost:5000/api"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`

	// Durable key-value storage for browser sessions
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	StorageFile   string `env:"STORAGE_FILE"   envDefault:"./.fb-admin/session.json"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Browser session cookie
	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"fb_admin_sid"`
	SessionTTL        time.Duration `env:"SESSION_TTL"         envDefault:"720h"`
	CookieSecure      bool          `env:"COOKIE_SECURE"       envDefault:"false"`

	// List views and polling
	SearchDebounce           time.Duration `env:"SEARCH_DEBOUNCE"            envDefault:"200ms"`
	SubscriptionPollInterval time.Duration `env:"SUBSCRIPTION_POLL_INTERVAL" envDefault:"60s"`

	// Cross-Origin Resource Sharing (comma separated origins)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}

	// This will fail if a field cannot be parsed into its Go type.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field requirements that struct tags cannot express.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.BackendURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: BACKEND_URL must be an absolute URL, got %q", c.BackendURL)
	}

	if c.BackendTimeout <= 0 {
		return errors.New("config: BACKEND_TIMEOUT must be positive")
	}

	switch c.StorageDriver {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return errors.New("config: REDIS_URL is required for the redis storage driver")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres storage driver")
		}
	case StorageFile:
		if c.StorageFile == "" {
			return errors.New("config: STORAGE_FILE is required for the file storage driver")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed list of EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.ExtraOrigins)
}
