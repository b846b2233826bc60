package time

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

func TestRealTimeProvider(t *testing.T) {
	clock := NewRealTimeProvider()

	now := clock.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.GreaterOrEqual(t, clock.Since(now), core.Duration(0))

	ctx, cancel := clock.WithTimeout(context.Background(), core.Duration(time.Millisecond))
	defer cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestManualTimeProvider(t *testing.T) {
	start := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	clock := NewManualTimeProvider(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(11 * time.Minute)
	assert.Equal(t, start.Add(11*time.Minute), clock.Now())
	assert.Equal(t, core.Duration(11*time.Minute), clock.Since(start))

	ctx, cancel := clock.WithTimeout(context.Background(), core.Duration(time.Hour))
	defer cancel()
	_, ok := ctx.Deadline()
	require.True(t, ok)
}
