package usecase

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// QueryUseCase serves read-only views
type QueryUseCase interface {
	AvailableProviders(ctx context.Context, excludeUserID string) ([]entity.ProviderSummary, error)
	ActiveRequestFor(ctx context.Context, requesterID string) (*entity.Request, error)
	PendingRequestsFor(ctx context.Context, providerID string) ([]*entity.Request, error)
	RequestByID(ctx context.Context, actorID, requestID string) (*entity.Request, error)
	TransactionHistory(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)
	Profile(ctx context.Context, userID string) (*entity.User, error)
}
