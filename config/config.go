package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - backend.go: hosted auth/data backend endpoints and keys
//   - auth.go: session authority timeouts and auth mode
//   - submission.go: contact submission strategies and local store
//   - database.go: Postgres and Redis configuration
//   - http.go: HTTP server, site and rate limit configuration
//   - observability.go: metrics
type AppConfig struct {
	// IsDev controls development mode behavior.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend is the hosted auth and data REST backend.
	Backend BackendConfig `envPrefix:"BACKEND_"`

	// Authentication configuration
	Auth AuthConfig

	// Contact submission pipeline and local pending store
	Submission SubmissionConfig
	LocalStore LocalStoreConfig

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP      HTTPConfig
	Site      SiteConfig
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Backend.Sanitize()
	c.Auth.Sanitize()
	c.Submission.Sanitize(c.Postgres.Enabled)
	c.LocalStore.Sanitize()
	c.HTTP.Sanitize()
	c.Site.Sanitize()
	c.RateLimit.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
