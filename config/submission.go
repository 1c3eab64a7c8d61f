package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Persistence strategy names accepted in SUBMISSION_STRATEGIES.
const (
	StrategyRESTInsert       = "rest_insert"
	StrategyRESTInsertReturn = "rest_insert_return"
	StrategyPGInsert         = "pg_insert"
)

// DefaultStrategies is the primary/secondary chain used when none is configured.
var DefaultStrategies = []string{StrategyRESTInsert, StrategyRESTInsertReturn}

// SubmissionConfig controls the contact submission fallback chain.
type SubmissionConfig struct {
	// Strategies is the ordered fallback chain; the first entry is used for retries.
	Strategies []string `env:"SUBMISSION_STRATEGIES" envDefault:"rest_insert,rest_insert_return" envSeparator:","`
	// AttemptTimeout bounds every individual persistence attempt.
	AttemptTimeout time.Duration `env:"SUBMISSION_ATTEMPT_TIMEOUT" envDefault:"8s"`
}

// Sanitize normalises strategy names, drops unknown or unavailable ones and restores defaults.
func (c *SubmissionConfig) Sanitize(pgAvailable bool) {
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = 8 * time.Second
	}
	out := make([]string, 0, len(c.Strategies))
	for _, s := range c.Strategies {
		name := strings.ToLower(strings.TrimSpace(s))
		if ValidateStrategy(name) != nil || slices.Contains(out, name) {
			continue
		}
		if name == StrategyPGInsert && !pgAvailable {
			continue
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		out = slices.Clone(DefaultStrategies)
	}
	c.Strategies = out
}

// ValidateStrategy reports whether name is a known strategy.
func ValidateStrategy(name string) error {
	switch name {
	case StrategyRESTInsert, StrategyRESTInsertReturn, StrategyPGInsert:
		return nil
	default:
		return fmt.Errorf("unknown submission strategy %q", name)
	}
}

// PendingStoreKind selects the LocalStore implementation for pending submissions.
type PendingStoreKind string

const (
	PendingStoreSQLite PendingStoreKind = "sqlite"
	PendingStoreRedis  PendingStoreKind = "redis"
	PendingStoreMemory PendingStoreKind = "memory"
)

// LocalStoreConfig controls client-local storage.
type LocalStoreConfig struct {
	// Path is the SQLite file used by the admin CLI (local storage analogue).
	Path string `env:"LOCAL_STORE_PATH" envDefault:"sentinel-local.db"`
	// PendingStore selects the backend for the pending submission queue.
	PendingStore PendingStoreKind `env:"PENDING_STORE" envDefault:"sqlite"`
	// RedisPrefix namespaces keys when PendingStore=redis.
	RedisPrefix string `env:"LOCAL_STORE_REDIS_PREFIX" envDefault:"sentinel:local:"`
}

// Sanitize falls back to sqlite for unknown store kinds.
func (c *LocalStoreConfig) Sanitize() {
	c.Path = strings.TrimSpace(c.Path)
	if c.Path == "" {
		c.Path = "sentinel-local.db"
	}
	switch PendingStoreKind(strings.ToLower(string(c.PendingStore))) {
	case PendingStoreSQLite, PendingStoreRedis, PendingStoreMemory:
		c.PendingStore = PendingStoreKind(strings.ToLower(string(c.PendingStore)))
	default:
		c.PendingStore = PendingStoreSQLite
	}
}
