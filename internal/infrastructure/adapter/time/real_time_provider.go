package time

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

// RealTimeProvider is the wall clock used by the running service
type RealTimeProvider struct{}

// NewRealTimeProvider creates the wall clock
func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

// Now returns the current UTC time so stored timestamps compare across hosts
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
