package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sentinellock/sentinel-web/internal/bounded"
	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/observability/metrics"
	"github.com/sentinellock/sentinel-web/internal/observability/statsd"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

const (
	defaultRestoreTimeout   = 8 * time.Second
	defaultRoleCheckTimeout = 5 * time.Second
	defaultAuthCallTimeout  = 15 * time.Second
)

// SessionAuthorityOptions groups dependencies for SessionAuthority.
type SessionAuthorityOptions struct {
	Backend ports.AuthBackend // Required: remote auth provider
	Roles   ports.RoleLookup  // Required: admin role lookup
	Config  SessionAuthorityConfig
}

// SessionAuthorityConfig holds timeouts, flags and optional observers.
type SessionAuthorityConfig struct {
	// RedirectURL is the email-confirmation callback sent with sign-ups.
	RedirectURL string

	RestoreTimeout   time.Duration
	RoleCheckTimeout time.Duration
	// CallTimeout bounds sign-in, sign-up and sign-out calls.
	CallTimeout time.Duration

	// GrantAdminOnRoleTimeout treats a role-check timeout as admin. Local debugging only.
	GrantAdminOnRoleTimeout bool

	Notifier ports.Notifier // Optional
	Metrics  statsd.Sink    // Optional
	Logger   *slog.Logger   // Optional
	Now      func() time.Time
}

// SessionAuthority is the single source of truth for who is signed in and whether
// they may see admin features. Construct one per process and share it by pointer.
type SessionAuthority struct {
	backend ports.AuthBackend
	roles   ports.RoleLookup
	cfg     SessionAuthorityConfig
	logger  *slog.Logger

	mu       sync.RWMutex
	identity *domainauth.Identity
	grant    domainauth.RoleGrant
	state    domainauth.State
	loading  bool

	subscribeOnce sync.Once
	unsubscribe   func()
	roleChecks    singleflight.Group
}

// NewSessionAuthority constructs a SessionAuthority. It starts in the loading state
// until RestoreSession completes.
func NewSessionAuthority(opts SessionAuthorityOptions) *SessionAuthority {
	if opts.Backend == nil {
		panic("SessionAuthority requires an AuthBackend")
	}
	if opts.Roles == nil {
		panic("SessionAuthority requires a RoleLookup")
	}

	cfg := opts.Config
	if cfg.RestoreTimeout <= 0 {
		cfg.RestoreTimeout = defaultRestoreTimeout
	}
	if cfg.RoleCheckTimeout <= 0 {
		cfg.RoleCheckTimeout = defaultRoleCheckTimeout
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultAuthCallTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionAuthority{
		backend: opts.Backend,
		roles:   opts.Roles,
		cfg:     cfg,
		logger:  logger.With("component", "session_authority"),
		state:   domainauth.StateUnauthenticated,
		loading: true,
	}
}

// RestoreSession loads any persisted session and subscribes to provider session changes.
// A timeout or error leaves the authority signed out and not loading; the error is returned
// for diagnostics only.
func (a *SessionAuthority) RestoreSession(ctx context.Context) error {
	a.subscribeOnce.Do(func() {
		unsubscribe := a.backend.OnSessionChange(a.handleSessionChange)
		a.mu.Lock()
		a.unsubscribe = unsubscribe
		a.mu.Unlock()
	})

	a.mu.Lock()
	a.state = domainauth.StateAuthenticating
	a.loading = true
	a.mu.Unlock()

	id, err := bounded.Call(ctx, "session restore", a.cfg.RestoreTimeout, a.backend.CurrentSession)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil || id == nil {
		a.clearLocked()
		if err != nil {
			a.logger.WarnContext(ctx, "session restore failed; continuing signed out", "error", err)
			return err
		}
		return nil
	}

	a.setIdentityLocked(*id)
	a.logger.InfoContext(ctx, "session restored", "user_id", id.ID)
	return nil
}

// SignIn authenticates with email and password. It does not check the admin role.
func (a *SessionAuthority) SignIn(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		err := apperrors.Validation("email and password are required")
		a.notify(ctx, model.ErrorNotice(NoticeTitleError, err.Message))
		return err
	}

	prev := a.beginAuthenticating()
	id, err := bounded.Call(ctx, "sign in", a.cfg.CallTimeout, func(c context.Context) (domainauth.Identity, error) {
		return a.backend.Authenticate(c, email, password)
	})
	if err != nil {
		a.endAuthenticating(prev)
		if apperrors.IsEmailNotConfirmed(err) {
			a.notify(ctx, model.ErrorNotice(NoticeTitleEmailNotConfirmed, NoticeEmailNotConfirmed))
		} else {
			a.notify(ctx, model.ErrorNotice(NoticeTitleError, apperrors.UserMessage(err)))
		}
		a.logger.InfoContext(ctx, "sign in failed", "code", apperrors.GetCode(err))
		return err
	}

	a.mu.Lock()
	a.setIdentityLocked(id)
	a.mu.Unlock()

	a.notify(ctx, model.InfoNotice(NoticeTitleSuccess, NoticeLoggedIn))
	a.logger.InfoContext(ctx, "signed in", "user_id", id.ID)
	return nil
}

// SignUp registers a new account. When the provider requires email confirmation the
// account is created but no identity is set.
func (a *SessionAuthority) SignUp(ctx context.Context, email, password, displayName string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		err := apperrors.Validation("email and password are required")
		a.notify(ctx, model.ErrorNotice(NoticeTitleError, err.Message))
		return err
	}

	profile := domainauth.Profile{
		DisplayName: strings.TrimSpace(displayName),
		RedirectURL: a.cfg.RedirectURL,
	}

	prev := a.beginAuthenticating()
	reg, err := bounded.Call(ctx, "sign up", a.cfg.CallTimeout, func(c context.Context) (domainauth.Registration, error) {
		return a.backend.Register(c, email, password, profile)
	})
	if err != nil {
		a.endAuthenticating(prev)
		a.notify(ctx, model.ErrorNotice(NoticeTitleError, apperrors.UserMessage(err)))
		return err
	}

	if reg.ConfirmationPending() {
		a.endAuthenticating(prev)
		a.notify(ctx, model.InfoNotice(NoticeTitleAccountCreated, NoticeConfirmEmail))
		a.logger.InfoContext(ctx, "account created; confirmation pending", "user_id", reg.UserID)
		return nil
	}

	a.mu.Lock()
	a.setIdentityLocked(*reg.Identity)
	a.mu.Unlock()
	a.notify(ctx, model.InfoNotice(NoticeTitleSuccess, NoticeAccountCreated))
	a.logger.InfoContext(ctx, "account created", "user_id", reg.UserID)
	return nil
}

// SignOut clears the local identity and role unconditionally. A remote failure is
// surfaced as a notice only.
func (a *SessionAuthority) SignOut(ctx context.Context) {
	a.mu.Lock()
	a.clearLocked()
	a.mu.Unlock()

	err := bounded.Do(ctx, "sign out", a.cfg.CallTimeout, a.backend.SignOut)
	if err != nil {
		a.logger.WarnContext(ctx, "remote sign out failed; signed out locally", "error", err)
		a.notify(ctx, model.ErrorNotice(NoticeTitleError, apperrors.UserMessage(err)))
		return
	}
	a.notify(ctx, model.InfoNotice(NoticeTitleSuccess, NoticeLoggedOut))
}

// CheckAdminRole looks up whether identityID (or the current identity when empty) holds
// the admin role and caches the answer. Lookup failures deny.
func (a *SessionAuthority) CheckAdminRole(ctx context.Context, identityID string) bool {
	id := strings.TrimSpace(identityID)
	if id == "" {
		a.mu.RLock()
		if a.identity != nil {
			id = a.identity.ID
		}
		a.mu.RUnlock()
	}
	if id == "" {
		a.mu.Lock()
		a.grant = domainauth.RoleGrant{Checked: true, CheckedAt: a.cfg.Now()}
		a.mu.Unlock()
		return false
	}

	start := a.cfg.Now()
	// The shared lookup outlives any single waiter; RoleCheckTimeout still bounds it.
	shared := context.WithoutCancel(ctx)
	ch := a.roleChecks.DoChan(id, func() (any, error) {
		return bounded.Call(shared, "admin role check", a.cfg.RoleCheckTimeout, func(c context.Context) (bool, error) {
			return a.roles.HasRole(c, id, domainauth.RoleAdmin)
		})
	})
	var v any
	var err error
	select {
	case r := <-ch:
		v, err = r.Val, r.Err
	case <-ctx.Done():
		// Only this caller gave up; leave the cached grant to the waiters that stayed.
		a.logger.DebugContext(shared, "admin role check abandoned by caller", "user_id", id, "error", ctx.Err())
		return false
	}
	elapsed := a.cfg.Now().Sub(start)

	isAdmin, result := a.resolveRoleCheck(ctx, id, v, err)
	metrics.EmitRoleCheck(a.cfg.Metrics, result, isAdmin, elapsed)

	a.mu.Lock()
	defer a.mu.Unlock()
	// Only cache for the identity that is still signed in.
	if a.identity != nil && a.identity.ID == id {
		a.grant = domainauth.RoleGrant{IsAdmin: isAdmin, Checked: true, CheckedAt: a.cfg.Now()}
		a.state = domainauth.StateRoleChecked
	}
	return isAdmin
}

func (a *SessionAuthority) resolveRoleCheck(ctx context.Context, id string, v any, err error) (bool, string) {
	if err == nil {
		granted, _ := v.(bool)
		return granted, metrics.ResultSuccess
	}
	if apperrors.IsTimeout(err) {
		if a.cfg.GrantAdminOnRoleTimeout {
			a.logger.ErrorContext(ctx,
				"GRANTING ADMIN ON ROLE CHECK TIMEOUT: AUTH_DEBUG_GRANT_ADMIN_ON_ROLE_TIMEOUT is enabled; never enable outside local development",
				"user_id", id)
			return true, metrics.ResultTimeout
		}
		a.logger.WarnContext(ctx, "admin role check timed out; denying", "user_id", id)
		return false, metrics.ResultTimeout
	}
	a.logger.WarnContext(ctx, "admin role check failed; denying", "user_id", id, "error", err)
	return false, metrics.ResultError
}

// Identity returns a copy of the current identity, or nil when signed out.
func (a *SessionAuthority) Identity() *domainauth.Identity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return nil
	}
	cp := *a.identity
	return &cp
}

// IsAdmin reports the cached admin flag. It is advisory and gates visibility only.
func (a *SessionAuthority) IsAdmin() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grant.IsAdmin
}

// RoleGrant returns the cached role grant.
func (a *SessionAuthority) RoleGrant() domainauth.RoleGrant {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grant
}

// Loading reports whether the initial session restore is still running.
func (a *SessionAuthority) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// State returns the lifecycle state.
func (a *SessionAuthority) State() domainauth.State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Close removes the session-change subscription.
func (a *SessionAuthority) Close() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (a *SessionAuthority) handleSessionChange(change domainauth.SessionChange) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if change.Ends() {
		if a.identity != nil {
			a.logger.Info("session ended by provider", "event", string(change.Event), "user_id", a.identity.ID)
		}
		a.clearLocked()
		a.loading = false
		return
	}

	if a.identity != nil && a.identity.ID == change.Identity.ID {
		// Same user; refresh credentials and keep the cached grant.
		a.identity.Credentials = change.Identity.Credentials
		a.identity.EmailConfirmedAt = change.Identity.EmailConfirmedAt
		return
	}
	a.setIdentityLocked(*change.Identity)
	a.loading = false
}

// beginAuthenticating enters Authenticating and returns the state to restore on failure.
func (a *SessionAuthority) beginAuthenticating() domainauth.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.state
	a.state = domainauth.StateAuthenticating
	return prev
}

func (a *SessionAuthority) endAuthenticating(prev domainauth.State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != domainauth.StateAuthenticating {
		return
	}
	if a.identity == nil || prev == domainauth.StateAuthenticating {
		a.state = domainauth.StateUnauthenticated
		return
	}
	a.state = prev
}

func (a *SessionAuthority) setIdentityLocked(id domainauth.Identity) {
	a.identity = &id
	a.grant = domainauth.RoleGrant{}
	a.state = domainauth.StateRoleUnknown
}

func (a *SessionAuthority) clearLocked() {
	a.identity = nil
	a.grant = domainauth.RoleGrant{}
	a.state = domainauth.StateUnauthenticated
}

func (a *SessionAuthority) notify(ctx context.Context, n model.Notice) {
	if a.cfg.Notifier != nil {
		a.cfg.Notifier.Notify(ctx, n)
	}
}
