package shared

import "time"

// Countdown is a fixed-duration timer advanced by explicit deltas.
//
// The simulation core performs no I/O and never reads the wall clock;
// all timers are driven by the deltas handed to Tick, which keeps node
// state transitions deterministic and testable.
type Countdown struct {
	duration time.Duration
	elapsed  time.Duration
}

// NewCountdown creates a countdown that completes after d.
// A non-positive duration is complete immediately.
func NewCountdown(d time.Duration) *Countdown {
	return &Countdown{duration: d}
}

// Advance moves the countdown forward by delta.
// Negative deltas are ignored.
func (c *Countdown) Advance(delta time.Duration) {
	if delta <= 0 {
		return
	}
	c.elapsed += delta
}

// Done reports whether the countdown has fully elapsed.
func (c *Countdown) Done() bool {
	return c.elapsed >= c.duration
}

// Progress returns the completed fraction in [0,1].
func (c *Countdown) Progress() float64 {
	if c.duration <= 0 {
		return 1
	}
	p := float64(c.elapsed) / float64(c.duration)
	if p > 1 {
		return 1
	}
	return p
}

// Duration returns the configured total duration.
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// Remaining returns the time left until completion, floored at zero.
func (c *Countdown) Remaining() time.Duration {
	if c.elapsed >= c.duration {
		return 0
	}
	return c.duration - c.elapsed
}

// Reset restarts the countdown with a new duration.
func (c *Countdown) Reset(d time.Duration) {
	c.duration = d
	c.elapsed = 0
}
