package testutil

import (
	"sync"
	"time"
)

// Clock provides a thread-safe deterministic time source for tests.
//
// Each call to Now advances the clock by a fixed step, so durations
// measured against it are exact and runs reproduce byte-identical
// reports. Reset rewinds to the start for test reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	now   time.Time
}

// NewClock creates a clock that starts at start and advances by step
// on every Now call.
//
// The first call to Now() returns start exactly.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{start: start, step: step, now: start}
}

// Now returns the current instant and advances the clock by one step.
//
// Thread-safe: uses mutex to protect the instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// Current returns the current instant without advancing.
//
// Thread-safe: uses mutex to protect the instant.
func (c *Clock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Reset rewinds the clock to its start.
//
// Used for test reuse. After Reset(), the next call to Now() returns
// the start instant again.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
