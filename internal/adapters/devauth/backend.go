package devauth

// Package devauth provides a config-driven AuthBackend for offline development.
// It never talks to the network; the single configured account is the only one
// that can sign in.

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// SessionStorageKey is the LocalStore key holding the dev session.
const SessionStorageKey = "auth.dev-session"

// Config controls the dev auth backend behavior.
// UserID, Email and Password are required.
type Config struct {
	UserID          string
	Email           string
	Password        string
	DisplayName     string
	SessionDuration time.Duration // default 8h when zero
	Store           ports.LocalStore
	Now             func() time.Time
}

// Backend implements ports.AuthBackend for local development.
type Backend struct {
	cfg   Config
	store ports.LocalStore
	now   func() time.Time

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]func(domainauth.SessionChange)
}

var _ ports.AuthBackend = (*Backend)(nil)

// memoryStore backs the session when no LocalStore is configured.
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// New constructs a dev auth backend from Config.
func New(cfg Config) (*Backend, error) {
	cfg.Email = strings.ToLower(strings.TrimSpace(cfg.Email))
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("dev auth: Password is required")
	}
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = 8 * time.Hour
	}
	store := cfg.Store
	if store == nil {
		store = &memoryStore{data: make(map[string][]byte)}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Backend{
		cfg:         cfg,
		store:       store,
		now:         now,
		subscribers: make(map[int]func(domainauth.SessionChange)),
	}, nil
}

// Authenticate accepts only the configured email/password pair.
func (b *Backend) Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domainauth.Identity{}, err
	}
	emailOK := strings.EqualFold(strings.TrimSpace(email), b.cfg.Email)
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(b.cfg.Password)) == 1
	if !emailOK || !passOK {
		return domainauth.Identity{}, apperrors.New(apperrors.ErrCodeInvalidCredentials, "invalid login credentials")
	}

	id, err := b.issue()
	if err != nil {
		return domainauth.Identity{}, err
	}
	if err := b.save(ctx, id); err != nil {
		return domainauth.Identity{}, err
	}
	b.emit(domainauth.SessionChange{Event: domainauth.EventSignedIn, Identity: &id})
	return id, nil
}

// Register refuses the configured address and otherwise behaves like a backend
// that requires email confirmation: the account is reported but no session starts.
func (b *Backend) Register(
	ctx context.Context,
	email, _ string,
	_ domainauth.Profile,
) (domainauth.Registration, error) {
	if err := ctx.Err(); err != nil {
		return domainauth.Registration{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == b.cfg.Email {
		return domainauth.Registration{}, apperrors.Conflict("user already registered")
	}
	token, err := randomString(12)
	if err != nil {
		return domainauth.Registration{}, fmt.Errorf("generate user id: %w", err)
	}
	return domainauth.Registration{UserID: "dev-" + token, Email: email}, nil
}

// CurrentSession returns the stored session, expiring it once past its lifetime.
func (b *Backend) CurrentSession(ctx context.Context) (*domainauth.Identity, error) {
	raw, ok, err := b.store.Get(ctx, SessionStorageKey)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read dev session")
	}
	if !ok {
		return nil, nil
	}
	var id domainauth.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		_ = b.store.Delete(ctx, SessionStorageKey)
		return nil, nil
	}
	if id.Credentials.Expired(b.now()) {
		_ = b.store.Delete(ctx, SessionStorageKey)
		b.emit(domainauth.SessionChange{Event: domainauth.EventExpired})
		return nil, nil
	}
	return &id, nil
}

// SignOut clears the stored session.
func (b *Backend) SignOut(ctx context.Context) error {
	err := b.store.Delete(ctx, SessionStorageKey)
	b.emit(domainauth.SessionChange{Event: domainauth.EventSignedOut})
	return err
}

func (b *Backend) OnSessionChange(fn func(domainauth.SessionChange)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSubID++
	id := b.nextSubID
	b.subscribers[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

func (b *Backend) emit(change domainauth.SessionChange) {
	b.mu.Lock()
	fns := make([]func(domainauth.SessionChange), 0, len(b.subscribers))
	for _, fn := range b.subscribers {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(change)
	}
}

func (b *Backend) issue() (domainauth.Identity, error) {
	access, err := randomString(32)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := randomString(32)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("generate refresh token: %w", err)
	}
	now := b.now().UTC()
	return domainauth.Identity{
		ID:               b.cfg.UserID,
		Email:            b.cfg.Email,
		DisplayName:      b.cfg.DisplayName,
		EmailConfirmedAt: &now,
		AuthenticatedAt:  now,
		Credentials: domainauth.Credentials{
			AccessToken:  "dev." + access,
			RefreshToken: refresh,
			TokenType:    "bearer",
			ExpiresAt:    now.Add(b.cfg.SessionDuration),
		},
	}, nil
}

func (b *Backend) save(ctx context.Context, id domainauth.Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode dev session: %w", err)
	}
	if err := b.store.Set(ctx, SessionStorageKey, raw); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "save dev session")
	}
	return nil
}

func randomString(n int) (string, error) {
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
