package persistence

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// TransactionRepository is the append-only ledger journal
type TransactionRepository interface {
	// Create appends an entry
	//
	// Possible errors:
	// - ErrConstraintViolation: If the entry id already exists
	// - ErrCollaboratorUnavailable: If the database is unreachable
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser returns the newest entries first, at most limit
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)

	// ListByRequest returns every entry tied to a request, oldest first
	ListByRequest(ctx context.Context, requestID string) ([]*entity.Transaction, error)

	// SignedSumByUser folds the whole journal of a user into a balance
	SignedSumByUser(ctx context.Context, userID string) (int64, error)
}
