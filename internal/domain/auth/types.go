package auth

// Package auth contains domain-level types for identities, sessions and role grants.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application role row held by an identity.
// Keep string form for easy persistence; values mirror the backend app_role enum.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	default:
		return false
	}
}

// Credentials are the opaque session tokens issued by the auth provider.
// Only the session authority and auth adapters may read them.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token is past its expiry at now.
// A zero ExpiresAt is treated as non-expiring.
func (c Credentials) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Identity is the authenticated actor recognized by the remote auth provider.
type Identity struct {
	ID               string      `json:"id"`
	Email            string      `json:"email"`
	DisplayName      string      `json:"display_name,omitempty"`
	EmailConfirmedAt *time.Time  `json:"email_confirmed_at,omitempty"`
	AuthenticatedAt  time.Time   `json:"authenticated_at"`
	Credentials      Credentials `json:"credentials"`
}

// EmailConfirmed reports whether the provider has confirmed the identity's email.
func (i Identity) EmailConfirmed() bool {
	return i.EmailConfirmedAt != nil && !i.EmailConfirmedAt.IsZero()
}

// Profile carries optional registration metadata.
type Profile struct {
	DisplayName string
	RedirectURL string
}

// RoleGrant is the client-side cached admin flag. It is advisory only and gates
// visibility; the backend enforces access.
type RoleGrant struct {
	IsAdmin   bool
	Checked   bool
	CheckedAt time.Time
}

// State is the session authority lifecycle state.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateRoleUnknown     State = "authenticated_role_unknown"
	StateRoleChecked     State = "authenticated_role_checked"
)

// SessionEvent names provider-pushed session notifications.
type SessionEvent string

const (
	EventSignedIn       SessionEvent = "SIGNED_IN"
	EventSignedOut      SessionEvent = "SIGNED_OUT"
	EventTokenRefreshed SessionEvent = "TOKEN_REFRESHED"
	EventExpired        SessionEvent = "EXPIRED"
)

// SessionChange is delivered to OnSessionChange subscribers. Identity is nil for
// SignedOut and Expired.
type SessionChange struct {
	Event    SessionEvent
	Identity *Identity
}

// Ends reports whether the change invalidates the current identity.
func (c SessionChange) Ends() bool {
	return c.Identity == nil || c.Event == EventSignedOut || c.Event == EventExpired
}

// Registration is the provider's answer to a sign-up. Identity is nil when the
// provider requires email confirmation before issuing a session.
type Registration struct {
	UserID   string
	Email    string
	Identity *Identity
}

// ConfirmationPending reports whether the account exists but has no session yet.
func (r Registration) ConfirmationPending() bool {
	return r.Identity == nil || !r.Identity.EmailConfirmed()
}

// RoleAssignment is a user_roles row.
type RoleAssignment struct {
	ID        string    `json:"id"         db:"id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	Role      Role      `json:"role"       db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
