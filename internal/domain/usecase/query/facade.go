package query

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// Limits bounds list sizes
type Limits struct {
	DefaultHistory int
	MaxHistory     int
	PendingInbox   int
}

// DefaultLimits are used for zero fields
var DefaultLimits = Limits{
	DefaultHistory: 50,
	MaxHistory:     200,
	PendingInbox:   50,
}

// Facade serves the read side. It never writes.
type Facade struct {
	uow       persistence.UnitOfWork
	providers cache.ProviderCache
	logger    coreport.Logger
	limits    Limits
}

// NewFacade creates a query facade. providers may be nil to always read the store.
func NewFacade(uow persistence.UnitOfWork, providers cache.ProviderCache, logger coreport.Logger, limits Limits) *Facade {
	if limits.DefaultHistory <= 0 {
		limits.DefaultHistory = DefaultLimits.DefaultHistory
	}
	if limits.MaxHistory <= 0 {
		limits.MaxHistory = DefaultLimits.MaxHistory
	}
	if limits.PendingInbox <= 0 {
		limits.PendingInbox = DefaultLimits.PendingInbox
	}
	return &Facade{
		uow:       uow,
		providers: providers,
		logger:    logger,
		limits:    limits,
	}
}

var _ usecase.QueryUseCase = (*Facade)(nil)

// AvailableProviders lists providers open for requests, without the caller.
// The cached snapshot holds every available provider and is filtered per call.
func (f *Facade) AvailableProviders(ctx context.Context, excludeUserID string) ([]entity.ProviderSummary, error) {
	if f.providers != nil {
		if snapshot, ok := f.providers.GetAvailable(ctx); ok {
			return without(snapshot, excludeUserID), nil
		}
	}

	users, err := f.uow.GetUserRepository(ctx).ListAvailable(ctx, "")
	if err != nil {
		return nil, err
	}
	snapshot := make([]entity.ProviderSummary, 0, len(users))
	for _, u := range users {
		snapshot = append(snapshot, u.ProviderSummary())
	}

	if f.providers != nil {
		f.providers.SetAvailable(ctx, snapshot)
	}
	return without(snapshot, excludeUserID), nil
}

func without(providers []entity.ProviderSummary, userID string) []entity.ProviderSummary {
	out := make([]entity.ProviderSummary, 0, len(providers))
	for _, p := range providers {
		if p.UserID != userID {
			out = append(out, p)
		}
	}
	return out
}

// ActiveRequestFor returns the requester's pending or accepted request
func (f *Facade) ActiveRequestFor(ctx context.Context, requesterID string) (*entity.Request, error) {
	if requesterID == "" {
		return nil, errs.ErrInvalidUserID
	}
	return f.uow.GetRequestRepository(ctx).FindActiveByRequester(ctx, requesterID)
}

// PendingRequestsFor returns the provider's incoming requests, oldest first
func (f *Facade) PendingRequestsFor(ctx context.Context, providerID string) ([]*entity.Request, error) {
	if providerID == "" {
		return nil, errs.ErrInvalidUserID
	}
	return f.uow.GetRequestRepository(ctx).ListPendingForProvider(ctx, providerID, f.limits.PendingInbox)
}

// RequestByID returns a request to one of its parties
func (f *Facade) RequestByID(ctx context.Context, actorID, requestID string) (*entity.Request, error) {
	if requestID == "" {
		return nil, errs.ErrInvalidRequestID
	}
	req, err := f.uow.GetRequestRepository(ctx).GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.IsParty(actorID) {
		return nil, errs.ErrNotRequestParty
	}
	return req, nil
}

// TransactionHistory returns the newest ledger entries first
func (f *Facade) TransactionHistory(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	switch {
	case limit <= 0:
		limit = f.limits.DefaultHistory
	case limit > f.limits.MaxHistory:
		limit = f.limits.MaxHistory
	}
	return f.uow.GetTransactionRepository(ctx).ListByUser(ctx, userID, limit)
}

// Profile returns the user's own account
func (f *Facade) Profile(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	return f.uow.GetUserRepository(ctx).GetByID(ctx, userID)
}
