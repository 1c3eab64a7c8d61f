package gotrue

// Package gotrue implements ports.AuthBackend against a GoTrue-compatible auth REST API.
// Sessions are persisted in a ports.LocalStore so a CLI process can resume them.

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sentinellock/sentinel-web/internal/adapters/backendapi"
	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// SessionStorageKey is the local-store key of the persisted session.
const SessionStorageKey = "auth.session"

// refreshLeeway refreshes tokens slightly before they expire.
const refreshLeeway = 30 * time.Second

// Options configures a Backend.
type Options struct {
	Client *backendapi.Client // Required
	Store  ports.LocalStore   // Required: session persistence
	Logger *slog.Logger
	Now    func() time.Time
}

// Backend talks to /auth/v1 and keeps the current session in the local store.
type Backend struct {
	client *backendapi.Client
	store  ports.LocalStore
	logger *slog.Logger
	now    func() time.Time

	// refreshMu serializes token refreshes so a refresh token is used once.
	refreshMu sync.Mutex

	subMu   sync.Mutex
	subs    map[int]func(domainauth.SessionChange)
	nextSub int
}

var _ ports.AuthBackend = (*Backend)(nil)

// New constructs a Backend.
func New(opts Options) (*Backend, error) {
	if opts.Client == nil {
		return nil, errors.New("gotrue: client is required")
	}
	if opts.Store == nil {
		return nil, errors.New("gotrue: session store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Backend{
		client: opts.Client,
		store:  opts.Store,
		logger: logger.With("component", "gotrue"),
		now:    now,
		subs:   make(map[int]func(domainauth.SessionChange)),
	}, nil
}

type userResponse struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
	ConfirmedAt      *time.Time     `json:"confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

type tokenResponse struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	ExpiresAt    int64         `json:"expires_at"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user"`
}

// signupResponse covers both answers: a session when email confirmation is off,
// otherwise the bare user object.
type signupResponse struct {
	tokenResponse
	userResponse
}

// Authenticate signs in with email and password.
func (b *Backend) Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error) {
	var tok tokenResponse
	err := b.client.Do(ctx, backendapi.Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/token",
		Query:  url.Values{"grant_type": {"password"}},
		Body:   map[string]string{"email": email, "password": password},
	}, &tok)
	if err != nil {
		return domainauth.Identity{}, err
	}

	id, err := b.identityFromToken(tok)
	if err != nil {
		return domainauth.Identity{}, err
	}
	if err := b.persist(ctx, id); err != nil {
		return domainauth.Identity{}, err
	}
	b.emit(domainauth.SessionChange{Event: domainauth.EventSignedIn, Identity: &id})
	return id, nil
}

// Register creates an account, passing the display name as user metadata.
func (b *Backend) Register(
	ctx context.Context,
	email, password string,
	profile domainauth.Profile,
) (domainauth.Registration, error) {
	query := url.Values{}
	if profile.RedirectURL != "" {
		query.Set("redirect_to", profile.RedirectURL)
	}
	body := map[string]any{"email": email, "password": password}
	if profile.DisplayName != "" {
		body["data"] = map[string]string{"full_name": profile.DisplayName}
	}

	var resp signupResponse
	err := b.client.Do(ctx, backendapi.Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/signup",
		Query:  query,
		Body:   body,
	}, &resp)
	if err != nil {
		return domainauth.Registration{}, err
	}

	if resp.AccessToken == "" {
		return domainauth.Registration{UserID: resp.ID, Email: resp.userResponse.Email}, nil
	}

	id, err := b.identityFromToken(resp.tokenResponse)
	if err != nil {
		return domainauth.Registration{}, err
	}
	if err := b.persist(ctx, id); err != nil {
		return domainauth.Registration{}, err
	}
	b.emit(domainauth.SessionChange{Event: domainauth.EventSignedIn, Identity: &id})
	return domainauth.Registration{UserID: id.ID, Email: id.Email, Identity: &id}, nil
}

// CurrentSession resumes the persisted session, refreshing an expired access token and
// revalidating the user. A session the provider no longer accepts is dropped.
func (b *Backend) CurrentSession(ctx context.Context) (*domainauth.Identity, error) {
	id, err := b.load(ctx)
	if err != nil || id == nil {
		return nil, err
	}

	current, err := b.ensureFresh(ctx, *id)
	if err != nil {
		if b.sessionRejected(err) {
			b.expire(ctx)
			return nil, nil
		}
		return nil, err
	}

	var user userResponse
	err = b.client.WithTokenSource(staticToken(current.Credentials)).Do(ctx, backendapi.Request{
		Path: "/auth/v1/user",
	}, &user)
	if err != nil {
		if b.sessionRejected(err) {
			b.expire(ctx)
			return nil, nil
		}
		return nil, err
	}

	applyUser(&current, user)
	if err := b.persist(ctx, current); err != nil {
		return nil, err
	}
	return &current, nil
}

// SignOut revokes the remote session and always clears the local one.
func (b *Backend) SignOut(ctx context.Context) error {
	id, loadErr := b.load(ctx)

	var remoteErr error
	if id != nil && id.Credentials.AccessToken != "" {
		remoteErr = b.client.WithTokenSource(staticToken(id.Credentials)).Do(ctx, backendapi.Request{
			Method: http.MethodPost,
			Path:   "/auth/v1/logout",
		}, nil)
		// The session is already gone remotely.
		if apperrors.IsUnauthorized(remoteErr) || apperrors.IsNotFound(remoteErr) {
			remoteErr = nil
		}
	}

	deleteErr := b.store.Delete(context.WithoutCancel(ctx), SessionStorageKey)
	b.emit(domainauth.SessionChange{Event: domainauth.EventSignedOut})

	return errors.Join(loadErr, remoteErr, deleteErr)
}

// OnSessionChange registers fn and returns its removal function.
func (b *Backend) OnSessionChange(fn func(domainauth.SessionChange)) func() {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	return func() {
		b.subMu.Lock()
		defer b.subMu.Unlock()
		delete(b.subs, id)
	}
}

func (b *Backend) emit(change domainauth.SessionChange) {
	b.subMu.Lock()
	fns := make([]func(domainauth.SessionChange), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.subMu.Unlock()

	for _, fn := range fns {
		fn(change)
	}
}

// ensureFresh returns id unchanged unless its access token is (nearly) expired.
func (b *Backend) ensureFresh(ctx context.Context, id domainauth.Identity) (domainauth.Identity, error) {
	if !id.Credentials.Expired(b.now().Add(refreshLeeway)) {
		return id, nil
	}
	if id.Credentials.RefreshToken == "" {
		return domainauth.Identity{}, apperrors.Unauthorized("session expired")
	}

	b.refreshMu.Lock()
	defer b.refreshMu.Unlock()

	// Another caller may have refreshed while we waited.
	if latest, err := b.load(ctx); err == nil && latest != nil && latest.ID == id.ID &&
		!latest.Credentials.Expired(b.now().Add(refreshLeeway)) {
		return *latest, nil
	}

	var tok tokenResponse
	err := b.client.Do(ctx, backendapi.Request{
		Method: http.MethodPost,
		Path:   "/auth/v1/token",
		Query:  url.Values{"grant_type": {"refresh_token"}},
		Body:   map[string]string{"refresh_token": id.Credentials.RefreshToken},
	}, &tok)
	if err != nil {
		return domainauth.Identity{}, err
	}

	refreshed, err := b.identityFromToken(tok)
	if err != nil {
		return domainauth.Identity{}, err
	}
	if refreshed.Email == "" {
		refreshed.Email = id.Email
	}
	if refreshed.DisplayName == "" {
		refreshed.DisplayName = id.DisplayName
	}
	if refreshed.EmailConfirmedAt == nil {
		refreshed.EmailConfirmedAt = id.EmailConfirmedAt
	}
	refreshed.AuthenticatedAt = id.AuthenticatedAt
	if err := b.persist(ctx, refreshed); err != nil {
		return domainauth.Identity{}, err
	}
	b.logger.DebugContext(ctx, "access token refreshed", "user_id", refreshed.ID)
	b.emit(domainauth.SessionChange{Event: domainauth.EventTokenRefreshed, Identity: &refreshed})
	return refreshed, nil
}

// sessionRejected reports whether err means the stored credentials are no longer valid.
func (b *Backend) sessionRejected(err error) bool {
	return apperrors.IsUnauthorized(err) || apperrors.IsInvalidCredentials(err) || apperrors.IsForbidden(err)
}

func (b *Backend) expire(ctx context.Context) {
	if err := b.store.Delete(context.WithoutCancel(ctx), SessionStorageKey); err != nil {
		b.logger.WarnContext(ctx, "failed to drop expired session", "error", err)
	}
	b.logger.InfoContext(ctx, "persisted session no longer valid; signed out")
	b.emit(domainauth.SessionChange{Event: domainauth.EventExpired})
}

func (b *Backend) identityFromToken(tok tokenResponse) (domainauth.Identity, error) {
	if strings.TrimSpace(tok.AccessToken) == "" {
		return domainauth.Identity{}, apperrors.Internal("auth provider returned no access token")
	}
	claims := readClaims(tok.AccessToken)

	now := b.now()
	creds := domainauth.Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    firstNonEmpty(tok.TokenType, "bearer"),
	}
	switch {
	case tok.ExpiresAt > 0:
		creds.ExpiresAt = time.Unix(tok.ExpiresAt, 0)
	case tok.ExpiresIn > 0:
		creds.ExpiresAt = now.Add(time.Duration(tok.ExpiresIn) * time.Second)
	default:
		creds.ExpiresAt = claims.expiresAt
	}

	id := domainauth.Identity{
		ID:              claims.subject,
		Email:           claims.email,
		AuthenticatedAt: now,
		Credentials:     creds,
	}
	if tok.User != nil {
		applyUser(&id, *tok.User)
	}
	if id.ID == "" {
		return domainauth.Identity{}, apperrors.Internal("auth provider returned a session without a user id")
	}
	return id, nil
}

func applyUser(id *domainauth.Identity, u userResponse) {
	if u.ID != "" {
		id.ID = u.ID
	}
	if u.Email != "" {
		id.Email = u.Email
	}
	switch {
	case u.EmailConfirmedAt != nil:
		id.EmailConfirmedAt = u.EmailConfirmedAt
	case u.ConfirmedAt != nil:
		id.EmailConfirmedAt = u.ConfirmedAt
	}
	if name, ok := u.UserMetadata["full_name"].(string); ok && name != "" {
		id.DisplayName = name
	}
}

type accessClaims struct {
	subject   string
	email     string
	expiresAt time.Time
}

// readClaims decodes the access token without verifying it; the provider already
// vouched for it and only expiry and subject are read.
func readClaims(raw string) accessClaims {
	var out accessClaims
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return out
	}
	out.subject, _ = claims.GetSubject()
	if email, ok := claims["email"].(string); ok {
		out.email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.expiresAt = exp.Time
	}
	return out
}

type storedSession struct {
	Identity domainauth.Identity `json:"identity"`
	SavedAt  time.Time           `json:"saved_at"`
}

func (b *Backend) persist(ctx context.Context, id domainauth.Identity) error {
	raw, err := json.Marshal(storedSession{Identity: id, SavedAt: b.now().UTC()})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode session")
	}
	if err := b.store.Set(context.WithoutCancel(ctx), SessionStorageKey, raw); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "persist session")
	}
	return nil
}

// load returns the persisted identity, or nil when none is stored or it is unreadable.
func (b *Backend) load(ctx context.Context) (*domainauth.Identity, error) {
	raw, ok, err := b.store.Get(ctx, SessionStorageKey)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read session")
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var s storedSession
	if err := json.Unmarshal(raw, &s); err != nil || s.Identity.ID == "" || s.Identity.Credentials.AccessToken == "" {
		b.logger.WarnContext(ctx, "ignoring unreadable persisted session")
		return nil, nil
	}
	if s.Identity.Credentials.ExpiresAt.IsZero() {
		s.Identity.Credentials.ExpiresAt = readClaims(s.Identity.Credentials.AccessToken).expiresAt
	}
	return &s.Identity, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
