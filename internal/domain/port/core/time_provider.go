package core

import (
	"context"
	"time"
)

// Duration is a span of ledger time
type Duration time.Duration

// Std converts to time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TimeProvider is the clock behind request timestamps, expiry cutoffs and
// notification delivery deadlines
type TimeProvider interface {
	// Now stamps accounts, journal lines and request transitions
	Now() time.Time
	// Since measures elapsed time on the same clock as Now
	Since(t time.Time) Duration
	// WithTimeout bounds background work such as notification delivery
	WithTimeout(ctx context.Context, timeout Duration) (context.Context, context.CancelFunc)
}
