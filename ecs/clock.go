package ecs

import "time"

// Clock is the simulation clock. It only moves when the Dispatcher advances
// it, so every system in a tick observes the same time.
type Clock struct {
	now time.Duration
}

func (c *Clock) Now() time.Duration {
	if c == nil {
		return 0
	}
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	if c == nil || d <= 0 {
		return
	}
	c.now += d
}

// Reset rewinds the clock to zero.
func (c *Clock) Reset() {
	if c == nil {
		return
	}
	c.now = 0
}
