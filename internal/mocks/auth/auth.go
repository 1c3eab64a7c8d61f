package auth

// Package auth contains simple hand-written test doubles for auth and storage ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"time"

	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthBackend = (*FakeAuthBackend)(nil)
	_ ports.RoleLookup  = (*StaticRoleLookup)(nil)
	_ ports.LocalStore  = (*MemoryLocalStore)(nil)
	_ ports.Notifier    = (*RecordingNotifier)(nil)
)

// FakeAuthBackend simulates an auth provider with optional per-call overrides and
// lets tests push session changes to subscribers.
type FakeAuthBackend struct {
	AuthenticateFunc   func(ctx context.Context, email, password string) (domainauth.Identity, error)
	RegisterFunc       func(ctx context.Context, email, password string, profile domainauth.Profile) (domainauth.Registration, error)
	CurrentSessionFunc func(ctx context.Context) (*domainauth.Identity, error)
	SignOutFunc        func(ctx context.Context) error

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]func(domainauth.SessionChange)
	subscribes  int
}

// NewFakeAuthBackend returns a backend that accepts any credentials.
func NewFakeAuthBackend() *FakeAuthBackend {
	return &FakeAuthBackend{subscribers: make(map[int]func(domainauth.SessionChange))}
}

// DefaultIdentity is the identity returned when no override is configured.
func DefaultIdentity(email string) domainauth.Identity {
	confirmed := time.Now().Add(-time.Hour)
	return domainauth.Identity{
		ID:               "fake-user-1",
		Email:            email,
		DisplayName:      "Fake User",
		EmailConfirmedAt: &confirmed,
		AuthenticatedAt:  time.Now(),
		Credentials: domainauth.Credentials{
			AccessToken:  "fake-access",
			RefreshToken: "fake-refresh",
			TokenType:    "bearer",
			ExpiresAt:    time.Now().Add(time.Hour),
		},
	}
}

func (f *FakeAuthBackend) Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, email, password)
	}
	return DefaultIdentity(email), nil
}

func (f *FakeAuthBackend) Register(
	ctx context.Context,
	email, password string,
	profile domainauth.Profile,
) (domainauth.Registration, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, email, password, profile)
	}
	id := DefaultIdentity(email)
	id.DisplayName = profile.DisplayName
	return domainauth.Registration{UserID: id.ID, Email: email, Identity: &id}, nil
}

func (f *FakeAuthBackend) CurrentSession(ctx context.Context) (*domainauth.Identity, error) {
	if f.CurrentSessionFunc != nil {
		return f.CurrentSessionFunc(ctx)
	}
	return nil, nil
}

func (f *FakeAuthBackend) SignOut(ctx context.Context) error {
	if f.SignOutFunc != nil {
		return f.SignOutFunc(ctx)
	}
	return nil
}

func (f *FakeAuthBackend) OnSessionChange(fn func(domainauth.SessionChange)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subscribers == nil {
		f.subscribers = make(map[int]func(domainauth.SessionChange))
	}
	f.nextSubID++
	id := f.nextSubID
	f.subscribers[id] = fn
	f.subscribes++
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subscribers, id)
	}
}

// Emit delivers change to every current subscriber.
func (f *FakeAuthBackend) Emit(change domainauth.SessionChange) {
	f.mu.Lock()
	fns := make([]func(domainauth.SessionChange), 0, len(f.subscribers))
	for _, fn := range f.subscribers {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(change)
	}
}

// Subscribers returns the number of active subscriptions.
func (f *FakeAuthBackend) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}

// SubscribeCalls returns how many times OnSessionChange was called.
func (f *FakeAuthBackend) SubscribeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribes
}

// StaticRoleLookup grants roles from a fixed user→roles table.
type StaticRoleLookup struct {
	Roles map[string][]domainauth.Role
	Err   error
}

func (s StaticRoleLookup) HasRole(_ context.Context, userID string, role domainauth.Role) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	for _, r := range s.Roles[userID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

// MemoryLocalStore is an in-memory LocalStore that records writes.
type MemoryLocalStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	Writes  int
	Deletes int
	SetErr  error
	GetErr  error
}

// NewMemoryLocalStore creates an empty store.
func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{data: make(map[string][]byte)}
}

func (m *MemoryLocalStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryLocalStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte(nil), value...)
	m.Writes++
	return nil
}

func (m *MemoryLocalStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.Deletes++
	return nil
}

// Raw returns the stored bytes for key, for assertions.
func (m *MemoryLocalStore) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// RecordingNotifier collects notices in order.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []model.Notice
}

func (r *RecordingNotifier) Notify(_ context.Context, n model.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices.
func (r *RecordingNotifier) Notices() []model.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Notice(nil), r.notices...)
}

// Last returns the most recent notice, if any.
func (r *RecordingNotifier) Last() (model.Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return model.Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
