// Package settlement pays out finished sharing sessions.
package settlement

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// Engine closes an accepted request. In one unit it credits the provider for
// the MB actually used, refunds the rest of the escrow to the requester,
// updates both usage counters and marks the request completed.
type Engine struct {
	uow          persistence.UnitOfWork
	ledger       usecase.LedgerUseCase
	dispatcher   usecase.NotificationDispatcher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewEngine creates a settlement engine
func NewEngine(
	uow persistence.UnitOfWork,
	ledger usecase.LedgerUseCase,
	dispatcher usecase.NotificationDispatcher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *Engine {
	return &Engine{
		uow:          uow,
		ledger:       ledger,
		dispatcher:   dispatcher,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

var _ usecase.SettlementUseCase = (*Engine)(nil)

// Settle completes the request with mbUsed. The state is checked before the
// usage, so settling a completed request reports an invalid transition.
func (e *Engine) Settle(ctx context.Context, actorID, requestID string, mbUsed int64) (*usecase.SettlementResult, error) {
	var result *usecase.SettlementResult

	err := e.uow.Execute(ctx, func(txCtx context.Context) error {
		requests := e.uow.GetRequestRepository(txCtx)

		req, err := requests.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if !req.IsParty(actorID) {
			return errs.ErrNotRequestParty
		}
		if req.Status != entity.RequestAccepted {
			return errs.NewTransitionError(req.ID, string(req.Status), string(entity.RequestCompleted))
		}

		owed, err := entity.SettlementAmount(req.MB, mbUsed, req.CoinsOffered)
		if err != nil {
			return errs.NewUsageError(req.ID, req.MB, mbUsed)
		}
		refund := req.CoinsOffered - owed

		if owed > 0 {
			if _, err := e.ledger.Credit(txCtx, usecase.LedgerEntry{
				UserID:      req.ProviderID,
				Coins:       owed,
				Type:        entity.TransactionReceived,
				Description: fmt.Sprintf("Shared %d MB", mbUsed),
				RequestID:   req.ID,
			}); err != nil {
				return err
			}
		}
		if refund > 0 {
			if _, err := e.ledger.Credit(txCtx, usecase.LedgerEntry{
				UserID:      req.RequesterID,
				Coins:       refund,
				Type:        entity.TransactionRefund,
				Description: fmt.Sprintf("Refund for %d unused MB", req.MB-mbUsed),
				RequestID:   req.ID,
			}); err != nil {
				return err
			}
		}

		users := e.uow.GetUserRepository(txCtx)
		if err := users.RecordProviderSession(txCtx, req.ProviderID, mbUsed); err != nil {
			return err
		}
		if err := users.RecordRequesterSession(txCtx, req.RequesterID, mbUsed); err != nil {
			return err
		}

		change, err := req.Complete(mbUsed, owed, e.timeProvider.Now())
		if err != nil {
			return err
		}
		if err := requests.Transition(txCtx, change); err != nil {
			return err
		}

		event := entity.NewRequestEvent(entity.EventRequestCompleted, req, refund, change.At)
		e.uow.AfterCommit(txCtx, func() {
			e.metrics.RequestTransition(string(change.From), string(change.To))
			e.metrics.Settlement(owed, refund)
			e.dispatcher.Dispatch(event)
		})

		result = &usecase.SettlementResult{
			Request:       req,
			CoinsOwed:     owed,
			CoinsRefunded: refund,
		}
		return nil
	})
	if err != nil {
		fields := errs.LogFieldsOf(err)
		fields["requestId"] = requestID
		fields["mbUsed"] = mbUsed
		e.logger.Warn("Settlement failed", fields)
		return nil, err
	}

	e.logger.Info("Session settled", map[string]any{
		"requestId":     requestID,
		"mbUsed":        mbUsed,
		"coinsOwed":     result.CoinsOwed,
		"coinsRefunded": result.CoinsRefunded,
	})
	return result, nil
}
