// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through
their constructors. No global variables hold config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dugoutlab/dugout/pkg/query"
)

// # Configuration Schema

// Config holds all runtime configuration for the Dugout API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	// AutoMigrate applies pending migrations before the server starts.
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Read cache (Redis). Empty disables caching.
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Uploaded media
	UploadDir       string `env:"UPLOAD_DIR"        envDefault:"./uploads"`
	UploadURLPrefix string `env:"UPLOAD_URL_PREFIX" envDefault:"/uploads"`
	PublicBaseURL   string `env:"PUBLIC_BASE_URL"   envDefault:"http://localhost:8000"`
	MaxUploadMB     int64  `env:"MAX_UPLOAD_MB"     envDefault:"200"`

	// Cross-Origin Resource Sharing (comma separated)
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://127.0.0.1:5173"`

	// Bearer token verification. Empty secret disables authentication.
	JWTSecret    string `env:"JWT_SECRET"`
	JWTIssuer    string `env:"JWT_ISSUER"`
	AuthRequired bool   `env:"AUTH_REQUIRED" envDefault:"false"`

	// Tracing
	OtelEnabled     bool    `env:"OTEL_ENABLED"                envDefault:"false"`
	OtelEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	OtelSampleRatio float64 `env:"OTEL_SAMPLER_RATIO"          envDefault:"0.1"`
	OtelServiceName string  `env:"OTEL_SERVICE_NAME"           envDefault:"dugout-api"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.AuthRequired && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: AUTH_REQUIRED is set but JWT_SECRET is empty")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed, non-empty CORS origins.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.CORSOrigins)
}

// MaxUploadBytes converts the configured megabyte limit to bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
