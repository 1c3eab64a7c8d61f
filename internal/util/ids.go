package util //nolint:revive // package name util hosts small shared helpers

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator hands out lexicographically sortable ULIDs from a monotonic
// entropy source, so IDs minted in the same millisecond still sort in call order.
// The zero value is not usable; construct with NewIDGenerator.
type IDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewIDGenerator returns a generator stamped by now (time.Now when nil).
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     now,
	}
}

// New returns the next ID.
func (g *IDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now().UTC()), g.entropy).String()
}

var (
	defaultIDsOnce sync.Once
	defaultIDs     *IDGenerator
)

// NewID returns a ULID from the process-wide generator.
func NewID() string {
	defaultIDsOnce.Do(func() { defaultIDs = NewIDGenerator(nil) })
	return defaultIDs.New()
}
