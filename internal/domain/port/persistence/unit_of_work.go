package persistence

import (
	"context"
)

// UnitOfWork coordinates repositories inside one atomic database transaction
type UnitOfWork interface {
	// Execute runs fn in a transaction and commits when fn returns nil.
	// A call made with a context that already carries a transaction joins it,
	// so ledger operations compose into request operations.
	Execute(ctx context.Context, fn func(txCtx context.Context) error) error

	// AfterCommit defers fn until the outermost transaction in ctx commits.
	// It is dropped on rollback and runs immediately outside a transaction.
	AfterCommit(ctx context.Context, fn func())

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository

	// GetTransactionRepository returns a ledger journal bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetRequestRepository returns a request repository bound to the current transaction
	GetRequestRepository(ctx context.Context) RequestRepository

	// GetNotificationRepository returns an inbox repository bound to the current transaction
	GetNotificationRepository(ctx context.Context) NotificationRepository
}
