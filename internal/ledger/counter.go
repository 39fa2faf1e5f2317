package ledger

import "context"

// EventLedger is the external event-counting collaborator. *Ledger
// implements it; tests substitute fakes. Calls against a Counter with no
// ledger are no-ops by construction, not by exception suppression.
type EventLedger interface {
	Count(ctx context.Context) (int64, error)
	Append(ctx context.Context, runToken, description string) error
}

// Counter is the monotonically non-decreasing event counter. The value
// never decreases over the process lifetime, and across restarts when a
// backing ledger exists. There is no decrement and no reset.
type Counter struct {
	value  int64
	ledger EventLedger
}

// NewCounter loads the counter value from the ledger. A nil ledger yields
// an in-memory counter starting at zero whose Record calls are no-ops.
// A ledger read failure also degrades to in-memory: counting is a side
// collaborator and must not block command execution.
func NewCounter(ctx context.Context, l EventLedger) *Counter {
	c := &Counter{ledger: l}
	if l == nil {
		return c
	}

	n, err := l.Count(ctx)
	if err != nil {
		c.ledger = nil
		return c
	}
	c.value = n
	return c
}

// Value returns the current counter value.
func (c *Counter) Value() int64 {
	return c.value
}

// Record appends one event description and advances the counter. With no
// ledger this is a no-op. An append failure is swallowed and the value
// stays unchanged, preserving "value equals ledger row count".
func (c *Counter) Record(ctx context.Context, runToken, description string) {
	if c.ledger == nil {
		return
	}
	if err := c.ledger.Append(ctx, runToken, description); err != nil {
		return
	}
	c.value++
}
