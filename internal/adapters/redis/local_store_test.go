package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinellock/sentinel-web/internal/ports"
	"github.com/sentinellock/sentinel-web/internal/testutil"
)

var _ ports.LocalStore = (*LocalStore)(nil)

// fakeKV is an in-memory kvClient.
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			n++
		}
		delete(f.data, k)
	}
	return redis.NewIntResult(n, nil)
}

func TestLocalStore_RoundTripWithPrefix(t *testing.T) {
	kv := newFakeKV()
	store := newLocalStore(kv, LocalStoreOptions{TTL: time.Hour})
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "pendingContactSubmissions")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "pendingContactSubmissions", []byte(`{"version":1,"entries":[]}`)))
	assert.Contains(t, kv.data, DefaultPrefix+"pendingContactSubmissions")
	assert.Equal(t, time.Hour, kv.ttls[DefaultPrefix+"pendingContactSubmissions"])

	v, ok, err := store.Get(ctx, "pendingContactSubmissions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"version":1,"entries":[]}`, string(v))

	require.NoError(t, store.Delete(ctx, "pendingContactSubmissions"))
	require.NoError(t, store.Delete(ctx, "pendingContactSubmissions"))
	_, ok, err = store.Get(ctx, "pendingContactSubmissions")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStore_ErrorsWrapped(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection reset")
	store := newLocalStore(kv, LocalStoreOptions{Prefix: "x:"})

	_, _, err := store.Get(context.Background(), "k")
	assert.ErrorContains(t, err, "redis get")
	assert.ErrorContains(t, store.Set(context.Background(), "k", nil), "redis set")
}

func TestLocalStore_Integration(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewLocalStore(client, LocalStoreOptions{Prefix: "sentinel:test:"})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(v))
	require.NoError(t, store.Delete(ctx, "k"))
}
