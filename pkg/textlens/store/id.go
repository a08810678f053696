package store

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator hands out ULIDs that sort by creation time, including for
// IDs minted within the same millisecond.
type IDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDGenerator creates a generator seeded from crypto/rand.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a fresh ID stamped with t.
func (g *IDGenerator) New(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

var defaultIDs = NewIDGenerator()

// NewRun starts a run record with a new ID and the current time.
func NewRun(kind Kind, source string) Run {
	now := time.Now().UTC()
	return Run{
		ID:        defaultIDs.New(now),
		Kind:      kind,
		Source:    source,
		CreatedAt: now,
	}
}
