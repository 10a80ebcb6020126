// Package testutil provides shared helpers for Hearth tests.
package testutil

import (
	"sync"
	"time"
)

// Clock is a thread-safe deterministic time source for tests.
//
// Each call to Now returns the current instant and then advances it by a
// fixed step, so consecutive timestamps are distinct, strictly increasing,
// and reproducible across runs. Repositories take a now-func; tests inject
// clock.Now to pin every stamped timestamp.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// Epoch is the conventional start instant for deterministic tests.
var Epoch = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

// NewClock creates a clock starting at start, advancing by step per call.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// NewDefaultClock creates a clock at Epoch advancing one second per call.
func NewDefaultClock() *Clock {
	return NewClock(Epoch, time.Second)
}

// Now returns the current instant and advances the clock.
//
// Thread-safe: uses mutex to protect the instant.
// Monotonic: returned instants never repeat and never decrease.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Current returns the next instant Now would produce, without advancing.
func (c *Clock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Reset rewinds the clock to start.
//
// Used for test reuse. After Reset(start), the next Now returns start.
func (c *Clock) Reset(start time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = start
}
