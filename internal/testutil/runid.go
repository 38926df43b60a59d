package testutil

import "sync"

// FixedRunIDGenerator returns predetermined run IDs.
//
// Once the list is exhausted the last ID is repeated, so a harness can be
// run any number of times with byte-identical logs.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedRunIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedRunIDGenerator creates a generator returning ids in order.
// With no ids, Generate returns "test-run-default".
func NewFixedRunIDGenerator(ids ...string) *FixedRunIDGenerator {
	if len(ids) == 0 {
		ids = []string{"test-run-default"}
	}
	return &FixedRunIDGenerator{ids: ids}
}

// Generate returns the next run ID.
// Implements harness.RunIDGenerator.
func (g *FixedRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}
