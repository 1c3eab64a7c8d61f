package ports

// Package ports defines interfaces (hexagonal ports) for auth, persistence and content.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
)

// AuthBackend is the remote authentication provider (GoTrue-compatible or dev).
type AuthBackend interface {
	// Authenticate exchanges an email/password pair for a session identity.
	Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error)

	// Register creates an account. The returned Registration has no Identity when the
	// provider requires email confirmation first.
	Register(ctx context.Context, email, password string, profile domainauth.Profile) (domainauth.Registration, error)

	// CurrentSession returns the persisted session, or nil when there is none.
	CurrentSession(ctx context.Context) (*domainauth.Identity, error)

	// SignOut ends the remote session and clears any persisted credentials.
	SignOut(ctx context.Context) error

	// OnSessionChange registers fn for provider-pushed session changes. The returned
	// function removes the subscription.
	OnSessionChange(fn func(domainauth.SessionChange)) (unsubscribe func())
}

// RoleLookup answers whether a user holds a role row.
type RoleLookup interface {
	HasRole(ctx context.Context, userID string, role domainauth.Role) (bool, error)
}

// RoleAdmin manages role assignments.
type RoleAdmin interface {
	GrantAdminByEmail(ctx context.Context, email string) error
	// GrantRole gives userID role. Granting a role the user holds is a no-op.
	GrantRole(ctx context.Context, userID string, role domainauth.Role) error
	RevokeRole(ctx context.Context, userID string, role domainauth.Role) error
	ListRoles(ctx context.Context) ([]domainauth.RoleAssignment, error)
}

// VerifiedToken carries the claims the admin API needs from a bearer token.
type VerifiedToken struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// TokenVerifier validates provider-issued access tokens server side.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (VerifiedToken, error)
}
