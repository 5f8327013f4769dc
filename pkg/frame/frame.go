// Package frame carries the time of the frame being built to everything that
// animates, instead of a process wide clock.
package frame

import "time"

// Context describes one frame
type Context struct {
	// Time is the number of seconds since the clock started
	Time float64
	// Delta is the number of seconds since the previous frame
	Delta float64
	// Frame counts ticks, starting at 0
	Frame int
}

// At returns the context of a single frame at the given time
func At(seconds float64) Context {
	return Context{Time: seconds}
}

// Clock produces frame contexts. Now can be replaced to drive the clock from
// tests or from a fixed time step.
type Clock struct {
	Now   func() time.Time
	start time.Time
	last  time.Time
	frame int
}

// NewClock creates a clock on the wall time
func NewClock() *Clock {
	return &Clock{Now: time.Now}
}

// FixedStep returns a Now function advancing by step on every call
func FixedStep(start time.Time, step time.Duration) func() time.Time {
	current := start.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

// Tick reads the time and returns the context of the next frame.
// The first tick has Time and Delta 0.
func (c *Clock) Tick() Context {
	if c.Now == nil {
		c.Now = time.Now
	}
	now := c.Now()
	if c.start.IsZero() {
		c.start = now
		c.last = now
	}
	ctx := Context{
		Time:  now.Sub(c.start).Seconds(),
		Delta: now.Sub(c.last).Seconds(),
		Frame: c.frame,
	}
	c.last = now
	c.frame++
	return ctx
}

// Reset restarts the clock at its next tick
func (c *Clock) Reset() {
	c.start = time.Time{}
	c.last = time.Time{}
	c.frame = 0
}
