package time

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

// ManualTimeProvider is a clock that only moves when told to. Timeouts still
// use the real clock.
type ManualTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualTimeProvider creates a clock stopped at start
func NewManualTimeProvider(start time.Time) *ManualTimeProvider {
	return &ManualTimeProvider{now: start}
}

var _ core.TimeProvider = (*ManualTimeProvider)(nil)

// Now returns the current manual time
func (p *ManualTimeProvider) Now() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.now
}

// Advance moves the clock forward by d
func (p *ManualTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	p.now = p.now.Add(d)
	p.mu.Unlock()
}

// Since returns the manual time elapsed since t
func (p *ManualTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(p.Now().Sub(t))
}

// WithTimeout uses a real deadline so stuck work still ends
func (p *ManualTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
