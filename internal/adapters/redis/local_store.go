package redis

// Package redis provides Redis-backed adapters.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces local-store keys.
const DefaultPrefix = "sentinel:local:"

// kvClient is the subset of redis.UniversalClient the store needs.
type kvClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LocalStore is a ports.LocalStore over Redis, used when the server keeps the
// pending queue shared between replicas.
type LocalStore struct {
	client kvClient
	prefix string
	ttl    time.Duration
}

// LocalStoreOptions configures a LocalStore.
type LocalStoreOptions struct {
	Prefix string        // default DefaultPrefix
	TTL    time.Duration // zero keeps keys until deleted
}

// NewLocalStore creates a Redis-backed local store.
func NewLocalStore(client redis.UniversalClient, opts LocalStoreOptions) *LocalStore {
	return newLocalStore(client, opts)
}

func newLocalStore(client kvClient, opts LocalStoreOptions) *LocalStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &LocalStore{client: client, prefix: prefix, ttl: opts.TTL}
}

func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

func (s *LocalStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
