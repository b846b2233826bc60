package usecase

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// CreateRequestCommand carries a requester's offer
type CreateRequestCommand struct {
	RequesterID  string
	ProviderID   string
	MB           int64
	CoinsOffered int64
	// ClientRef makes retries of the same create idempotent
	ClientRef string
}

// SettlementResult is the outcome of completing a session
type SettlementResult struct {
	Request       *entity.Request
	CoinsOwed     int64
	CoinsRefunded int64
}

// RequestUseCase drives the request lifecycle
type RequestUseCase interface {
	Create(ctx context.Context, cmd CreateRequestCommand) (*entity.Request, error)
	Accept(ctx context.Context, providerID, requestID string) (*entity.Request, error)
	Ignore(ctx context.Context, providerID, requestID string) (*entity.Request, error)
	Complete(ctx context.Context, actorID, requestID string, mbUsed int64) (*SettlementResult, error)
}

// SettlementUseCase pays out a finished session
type SettlementUseCase interface {
	Settle(ctx context.Context, actorID, requestID string, mbUsed int64) (*SettlementResult, error)
}

// NotificationDispatcher hands committed events to the notification channels
type NotificationDispatcher interface {
	Dispatch(event entity.RequestEvent)
}
