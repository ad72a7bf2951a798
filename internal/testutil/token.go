package testutil

import "sync"

// FixedTokenGenerator returns predetermined run tokens for testing.
//
// This enables deterministic run records and golden output comparison.
// Tests provide a known sequence of tokens and verify exact stored ids.
//
// Thread-safety: FixedTokenGenerator is safe for concurrent use via internal mutex.
type FixedTokenGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokenGenerator creates a generator that returns tokens in order.
//
// Example:
//
//	gen := NewFixedTokenGenerator("run-1", "run-2")
//	gen.Generate() // "run-1"
//	gen.Generate() // "run-2"
//	gen.Generate() // panic: all tokens exhausted
func NewFixedTokenGenerator(tokens ...string) *FixedTokenGenerator {
	return &FixedTokenGenerator{
		tokens: tokens,
		idx:    0,
	}
}

// Generate returns the next predetermined token.
// Implements store.RunTokenGenerator.
//
// Panics if all tokens have been consumed. This is a fail-fast approach
// to catch test misconfiguration (test recorded more runs than expected).
func (g *FixedTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedTokenGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
