package testutil

import (
	"sync"
	"time"
)

// FakeClock is a manually advanced clock for code that takes a
// func() time.Time.
//
// Usage:
//
//	clock := testutil.NewFakeClock()
//	store := ratelimit.New(5, 15*time.Minute, clock.Now)
//	clock.Advance(16 * time.Minute)
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a clock set to a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
