package cache

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// ProviderCache holds a short-lived snapshot of available providers.
// A miss or a cache failure falls through to the store.
type ProviderCache interface {
	GetAvailable(ctx context.Context) ([]entity.ProviderSummary, bool)
	SetAvailable(ctx context.Context, providers []entity.ProviderSummary)
	Invalidate(ctx context.Context)
}
