package config

import (
	"strings"
	"time"
)

// BackendConfig points at the hosted GoTrue-compatible auth API and PostgREST-compatible data API.
type BackendConfig struct {
	// URL is the project base URL, e.g. https://abc.supabase.co.
	URL string `env:"URL"`
	// AnonKey is the public API key sent as the apikey header.
	AnonKey string `env:"ANON_KEY"`
	// ServiceKey bypasses row-level security. Server-side only; never ship to clients.
	ServiceKey string `env:"SERVICE_KEY"`
	// JWKSURL overrides the key set used to verify access tokens.
	JWKSURL string `env:"JWKS_URL"`
	// Issuer overrides the expected access token issuer.
	Issuer string `env:"ISSUER"`
	// JWTSecret verifies HS256 access tokens locally instead of fetching JWKS.
	JWTSecret string `env:"JWT_SECRET"`
	// JWTAudience, when set, must appear in the aud claim of admin API tokens.
	JWTAudience string `env:"JWT_AUDIENCE"`
	// RequestTimeout bounds individual HTTP requests to the backend.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}

// Sanitize trims values and derives the default JWKS URL and issuer.
func (c *BackendConfig) Sanitize() {
	c.URL = strings.TrimRight(strings.TrimSpace(c.URL), "/")
	c.AnonKey = strings.TrimSpace(c.AnonKey)
	c.ServiceKey = strings.TrimSpace(c.ServiceKey)
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 15 * time.Second
	}
	if c.URL == "" {
		return
	}
	if strings.TrimSpace(c.JWKSURL) == "" {
		c.JWKSURL = c.URL + "/auth/v1/.well-known/jwks.json"
	}
	if strings.TrimSpace(c.Issuer) == "" {
		c.Issuer = c.URL + "/auth/v1"
	}
}

// Configured reports whether a backend URL and anon key are present.
func (c BackendConfig) Configured() bool {
	return c.URL != "" && c.AnonKey != ""
}

// DataKey returns the key used for server-side data access, preferring the service key.
func (c BackendConfig) DataKey() string {
	if c.ServiceKey != "" {
		return c.ServiceKey
	}
	return c.AnonKey
}

// CanVerifyTokens reports whether enough is configured to verify access tokens.
func (c BackendConfig) CanVerifyTokens() bool {
	return c.Issuer != "" && (c.JWKSURL != "" || c.JWTSecret != "")
}
