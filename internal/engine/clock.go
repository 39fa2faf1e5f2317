package engine

import "sync/atomic"

// Clock is a monotonic logical clock stamping per-line sequence numbers.
//
// Line outcomes are ordered by this clock rather than wall time, so two
// runs of the same script produce the same ordering regardless of timer
// resolution.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though the engine's single-threaded design means only one goroutine
// typically calls Next.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific sequence number.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
// Each call returns a unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
