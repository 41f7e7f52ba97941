// Package timeline owns the simulation clock and the time-gated work that
// hangs off it: one-shot scheduled events and cancelable deferred tasks.
//
// Everything here is driven from the frame loop and is not safe for
// concurrent use.
package timeline

import "time"

// Clock is the monotonically increasing simulation clock.
type Clock struct {
	elapsed time.Duration
	delta   time.Duration
}

// Advance moves the clock forward by dt and returns the new elapsed time.
// Negative deltas are treated as zero so the clock never runs backwards.
func (c *Clock) Advance(dt time.Duration) time.Duration {
	if dt < 0 {
		dt = 0
	}
	c.delta = dt
	c.elapsed += dt
	return c.elapsed
}

// Elapsed returns the time since the session started.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Delta returns the step applied by the last Advance.
func (c *Clock) Delta() time.Duration {
	return c.delta
}

// Seconds converts a duration to float seconds, the unit animation code uses.
func Seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
