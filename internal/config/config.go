// Package config provides application configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/proposal/internal/db"
	"github.com/caarlos0/env/v11"
)

// Config holds the process-level settings. LLM settings live in
// llm.LLMConfig and are loaded separately.
type Config struct {
	DBPath           string        `env:"PROPOSAL_DB"`
	HTTPAddr         string        `env:"PROPOSAL_HTTP_ADDR"`
	CORSOrigins      []string      `env:"PROPOSAL_CORS_ORIGINS" envSeparator:","`
	LogLevel         string        `env:"PROPOSAL_LOG_LEVEL"`
	LogFormat        string        `env:"PROPOSAL_LOG_FORMAT"`
	RedisURL         string        `env:"PROPOSAL_REDIS_URL"`
	DocumentCacheTTL time.Duration `env:"PROPOSAL_DOCUMENT_CACHE_TTL"`
	ShutdownTimeout  time.Duration `env:"PROPOSAL_SHUTDOWN_TIMEOUT"`
}

// DefaultConfig returns the settings used when no environment overrides
// are present. DBPath is resolved by Load.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:         ":8080",
		CORSOrigins:      []string{"*"},
		LogLevel:         "info",
		LogFormat:        "json",
		DocumentCacheTTL: 24 * time.Hour,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Load overlays environment variables on DefaultConfig and validates the
// result.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBPath == "" {
		path, err := db.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	origins := cfg.CORSOrigins[:0]
	for _, o := range cfg.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSOrigins = origins

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("PROPOSAL_DB cannot be empty")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("PROPOSAL_HTTP_ADDR cannot be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("PROPOSAL_LOG_LEVEL must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("PROPOSAL_LOG_FORMAT must be json or text (got %q)", c.LogFormat)
	}
	if c.DocumentCacheTTL < 0 {
		return fmt.Errorf("PROPOSAL_DOCUMENT_CACHE_TTL must be >= 0")
	}
	return nil
}

// CacheEnabled reports whether a redis document cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
