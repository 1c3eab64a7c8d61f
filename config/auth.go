package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication backend for the application.
type AuthMode string

const (
	// AuthModeBackend authenticates against the hosted auth API.
	AuthModeBackend AuthMode = "backend"
	// AuthModeDev uses a config-driven identity (for offline development only).
	AuthModeDev AuthMode = "dev"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "backend", "dev":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: backend, dev)", v)
	}
}

// DevAuthConfig controls the dev auth identity.
// Used when AUTH_MODE=dev for development and testing.
type DevAuthConfig struct {
	UserID      string `env:"USER_ID"      envDefault:"dev-user"`
	Email       string `env:"EMAIL"        envDefault:"dev@example.com"`
	Password    string `env:"PASSWORD"     envDefault:"dev"`
	DisplayName string `env:"DISPLAY_NAME" envDefault:"Dev User"`
	Admin       bool   `env:"ADMIN"        envDefault:"true"`
}

// AuthConfig groups all session authority configuration.
type AuthConfig struct {
	// Mode determines which auth backend to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"backend"`

	// SessionRestoreTimeout bounds the persisted-session lookup at startup.
	SessionRestoreTimeout time.Duration `env:"AUTH_SESSION_RESTORE_TIMEOUT" envDefault:"8s"`

	// RoleCheckTimeout bounds the admin role lookup.
	RoleCheckTimeout time.Duration `env:"AUTH_ROLE_CHECK_TIMEOUT" envDefault:"5s"`

	// DebugGrantAdminOnRoleTimeout treats a role-check timeout as admin. Local debugging only:
	// enabling it anywhere reachable by real users hands admin UI to anyone when the backend is slow.
	DebugGrantAdminOnRoleTimeout bool `env:"AUTH_DEBUG_GRANT_ADMIN_ON_ROLE_TIMEOUT" envDefault:"false"`

	// DevAuth configuration (used when Mode=dev).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize restores defaults for non-positive timeouts.
func (c *AuthConfig) Sanitize() {
	if c.SessionRestoreTimeout <= 0 {
		c.SessionRestoreTimeout = 8 * time.Second
	}
	if c.RoleCheckTimeout <= 0 {
		c.RoleCheckTimeout = 5 * time.Second
	}
	if c.Mode == "" {
		c.Mode = AuthModeBackend
	}
}
