// Package clock supplies the time used for order, coupon and token stamps.
package clock

import (
	"sync"
	"time"
)

// Postgres timestamptz keeps microseconds; stamps are truncated so a value
// read back equals the value written.
const precision = time.Microsecond

type Clock interface {
	Now() time.Time
}

type System struct{}

func New() Clock {
	return System{}
}

func (System) Now() time.Time {
	return time.Now().UTC().Truncate(precision)
}

// Fixed is a settable clock for tests. Safe for concurrent use.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t.UTC().Truncate(precision)}
}

func (c *Fixed) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fixed) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC().Truncate(precision)
	c.mu.Unlock()
}

func (c *Fixed) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
