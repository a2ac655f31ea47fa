// ABOUTME: Configuration loader for the CareTrack client tooling
// ABOUTME: Loads settings from a .env file and environment variables with defaults

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration shared by the CLI and the mock backend.
type Config struct {
	// APIURL is the CareTrack backend base URL.
	APIURL string `env:"CARETRACK_API_URL" envDefault:"http://localhost:8080"`

	// TokenFile overrides the default persisted token location.
	TokenFile string `env:"CARETRACK_TOKEN_FILE"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Request cache
	CacheTTLSeconds int `env:"CACHE_TTL" envDefault:"300"`
	CacheCapacity   int `env:"CACHE_CAPACITY" envDefault:"100"`

	// Singleflight de-duplicates concurrent identical GETs (off by default,
	// matching the original client's behavior).
	Singleflight bool `env:"CARETRACK_SINGLEFLIGHT" envDefault:"false"`

	// Debug enables diagnostic tooling in development builds.
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Mock backend
	MockPort      string `env:"MOCK_PORT" envDefault:"8080"`
	MockJWTSecret string `env:"MOCK_JWT_SECRET" envDefault:"caretrack-mock-secret"`
}

// Load reads a .env file if one exists, then parses the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.CacheTTLSeconds < 1 {
		return nil, fmt.Errorf("CACHE_TTL must be at least 1 second, got %d", cfg.CacheTTLSeconds)
	}
	if cfg.CacheCapacity < 1 {
		return nil, fmt.Errorf("CACHE_CAPACITY must be at least 1, got %d", cfg.CacheCapacity)
	}

	return cfg, nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
