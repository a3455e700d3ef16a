// Package clock supplies wall-clock time behind an interface so prompt
// rendering can be tested with a fixed instant. Production code injects
// Real(); tests inject Fake().
package clock

import (
	"sync"
	"time"
)

// TimestampLayout is the 24-hour layout used for the time segment.
const TimestampLayout = "15:04:05"

// Clock abstracts time.Now.
type Clock interface {
	Now() time.Time
}

// Real returns a Clock backed by the standard time package.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Fake returns a FakeClock fixed at the given instant. Time stands still
// until Set or Advance is called.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for tests. Safe for concurrent use.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Set moves the clock to t.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Timestamp formats the clock's current time with layout. An empty layout
// means TimestampLayout.
func Timestamp(c Clock, layout string) string {
	if layout == "" {
		layout = TimestampLayout
	}
	return c.Now().Format(layout)
}
