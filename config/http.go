package config

import (
	"strings"
	"time"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// ReadHeaderTimeout bounds slowloris-style header reads.
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// MaxBodyBytes caps request bodies on the public contact endpoint.
	MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" envDefault:"65536"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.ReadHeaderTimeout <= 0 {
		h.ReadHeaderTimeout = 5 * time.Second
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
	if h.MaxBodyBytes <= 0 {
		h.MaxBodyBytes = 64 << 10
	}
}

// SiteConfig describes the public marketing site.
type SiteConfig struct {
	// URL is the canonical origin, used for sitemap entries and sign-up redirects.
	URL string `env:"SITE_URL" envDefault:"https://sentinellock.com"`
	// SitemapOutput is where the admin CLI writes sitemap.xml by default.
	SitemapOutput string `env:"SITEMAP_OUTPUT" envDefault:"public/sitemap.xml"`
}

// Sanitize strips trailing slashes from the site URL.
func (s *SiteConfig) Sanitize() {
	s.URL = strings.TrimRight(strings.TrimSpace(s.URL), "/")
	if s.URL == "" {
		s.URL = "https://sentinellock.com"
	}
}

// RedirectURL returns the sign-up confirmation callback, the site root.
func (s SiteConfig) RedirectURL() string {
	return s.URL + "/"
}

// RateLimitConfig throttles the public contact endpoint per client IP.
type RateLimitConfig struct {
	Enabled bool    `env:"ENABLED" envDefault:"true"`
	RPS     float64 `env:"RPS"     envDefault:"0.2"`
	Burst   int     `env:"BURST"   envDefault:"5"`
	// TrustProxy reads the client IP from X-Forwarded-For.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

// Sanitize disables limiting when the values cannot admit any request.
func (r *RateLimitConfig) Sanitize() {
	if r.RPS <= 0 || r.Burst <= 0 {
		r.Enabled = false
	}
}
