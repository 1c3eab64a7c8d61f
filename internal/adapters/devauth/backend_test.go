package devauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/sentinellock/sentinel-web/internal/domain/auth"
	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
	mocksauth "github.com/sentinellock/sentinel-web/internal/mocks/auth"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestBackend(t *testing.T) (*Backend, *mocksauth.MemoryLocalStore, *clock) {
	t.Helper()
	store := mocksauth.NewMemoryLocalStore()
	clk := &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	b, err := New(Config{
		UserID:          "dev-1",
		Email:           "Dev@SentinelLock.com",
		Password:        "pw",
		DisplayName:     "Dev",
		SessionDuration: time.Hour,
		Store:           store,
		Now:             clk.now,
	})
	require.NoError(t, err)
	return b, store, clk
}

func TestNew_RequiresFields(t *testing.T) {
	_, err := New(Config{Email: "a@b.c", Password: "x"})
	assert.Error(t, err)
	_, err = New(Config{UserID: "u", Password: "x"})
	assert.Error(t, err)
	_, err = New(Config{UserID: "u", Email: "a@b.c"})
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	b, store, clk := newTestBackend(t)
	var events []domainauth.SessionEvent
	b.OnSessionChange(func(c domainauth.SessionChange) { events = append(events, c.Event) })

	_, err := b.Authenticate(context.Background(), "dev@sentinellock.com", "nope")
	assert.True(t, apperrors.IsInvalidCredentials(err))

	id, err := b.Authenticate(context.Background(), " DEV@sentinellock.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "dev-1", id.ID)
	assert.Equal(t, "dev@sentinellock.com", id.Email)
	assert.True(t, id.EmailConfirmed())
	assert.Equal(t, clk.t.Add(time.Hour), id.Credentials.ExpiresAt)
	assert.Equal(t, []domainauth.SessionEvent{domainauth.EventSignedIn}, events)

	_, ok := store.Raw(SessionStorageKey)
	assert.True(t, ok)
}

func TestCurrentSession_RestoresAndExpires(t *testing.T) {
	b, store, clk := newTestBackend(t)
	ctx := context.Background()

	got, err := b.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = b.Authenticate(ctx, "dev@sentinellock.com", "pw")
	require.NoError(t, err)

	got, err = b.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "dev-1", got.ID)

	var expired bool
	b.OnSessionChange(func(c domainauth.SessionChange) { expired = c.Event == domainauth.EventExpired })
	clk.t = clk.t.Add(2 * time.Hour)
	got, err = b.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, expired)
	_, ok := store.Raw(SessionStorageKey)
	assert.False(t, ok)
}

func TestCurrentSession_CorruptIsCleared(t *testing.T) {
	b, store, _ := newTestBackend(t)
	require.NoError(t, store.Set(context.Background(), SessionStorageKey, []byte("{not json")))

	got, err := b.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
	_, ok := store.Raw(SessionStorageKey)
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	b, _, _ := newTestBackend(t)

	_, err := b.Register(context.Background(), "dev@sentinellock.com", "pw", domainauth.Profile{})
	assert.True(t, apperrors.IsConflict(err))

	reg, err := b.Register(context.Background(), "New@Example.com", "pw", domainauth.Profile{DisplayName: "N"})
	require.NoError(t, err)
	assert.True(t, reg.ConfirmationPending())
	assert.Equal(t, "new@example.com", reg.Email)
	assert.NotEmpty(t, reg.UserID)
}

func TestSignOut_ClearsAndNotifies(t *testing.T) {
	b, store, _ := newTestBackend(t)
	ctx := context.Background()
	_, err := b.Authenticate(ctx, "dev@sentinellock.com", "pw")
	require.NoError(t, err)

	var got domainauth.SessionChange
	unsubscribe := b.OnSessionChange(func(c domainauth.SessionChange) { got = c })
	require.NoError(t, b.SignOut(ctx))
	assert.Equal(t, domainauth.EventSignedOut, got.Event)
	assert.True(t, got.Ends())
	_, ok := store.Raw(SessionStorageKey)
	assert.False(t, ok)

	unsubscribe()
	got = domainauth.SessionChange{}
	require.NoError(t, b.SignOut(ctx))
	assert.Empty(t, got.Event)
}

func TestWithoutStore_KeepsSessionInMemory(t *testing.T) {
	b, err := New(Config{UserID: "u", Email: "u@example.com", Password: "pw"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = b.Authenticate(ctx, "u@example.com", "pw")
	require.NoError(t, err)
	got, err := b.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u", got.ID)
}
