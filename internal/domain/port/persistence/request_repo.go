package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// RequestRepository stores sharing requests. Status changes go through
// Transition only.
type RequestRepository interface {
	// Create inserts a pending request
	//
	// Possible errors:
	// - ErrActiveRequestExists: If the requester already holds an active request
	// - ErrCollaboratorUnavailable: If the database is unreachable
	Create(ctx context.Context, request *entity.Request) error

	// GetByID retrieves a request
	//
	// Possible errors:
	// - ErrRequestNotFound: If the request doesn't exist
	GetByID(ctx context.Context, id string) (*entity.Request, error)

	// FindActiveByRequester returns the requester's pending or accepted request
	//
	// Possible errors:
	// - ErrRequestNotFound: If there is none
	FindActiveByRequester(ctx context.Context, requesterID string) (*entity.Request, error)

	// FindByClientRef returns the request created with the requester's idempotency key
	//
	// Possible errors:
	// - ErrRequestNotFound: If the key was never used
	FindByClientRef(ctx context.Context, requesterID, clientRef string) (*entity.Request, error)

	// ListPendingForProvider returns the provider's pending inbox, oldest first
	ListPendingForProvider(ctx context.Context, providerID string, limit int) ([]*entity.Request, error)

	// ListPendingCreatedBefore returns pending requests older than cutoff
	ListPendingCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.Request, error)

	// Transition applies change only while the stored status equals change.From
	//
	// Possible errors:
	// - ErrRequestNotFound: If the request doesn't exist
	// - ErrInvalidTransition: If another writer changed the status first
	Transition(ctx context.Context, change entity.StatusChange) error
}
