package request

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// Ignore lets the addressed provider decline a pending request. The full
// escrow goes back to the requester as a refund.
func (s *Service) Ignore(ctx context.Context, providerID, requestID string) (*entity.Request, error) {
	if err := s.validator.ValidateAction(providerID, requestID); err != nil {
		return nil, err
	}
	return s.close(ctx, providerID, requestID, entity.IgnoreReasonProvider)
}

// Expire closes a pending request nobody answered
func (s *Service) Expire(ctx context.Context, requestID string) (*entity.Request, error) {
	if requestID == "" {
		return nil, errs.ErrInvalidRequestID
	}
	return s.close(ctx, "", requestID, entity.IgnoreReasonExpired)
}

func (s *Service) close(ctx context.Context, actorID, requestID string, reason entity.IgnoreReason) (*entity.Request, error) {
	var ignored *entity.Request
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		requests := s.uow.GetRequestRepository(txCtx)

		req, err := requests.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if reason == entity.IgnoreReasonProvider && req.ProviderID != actorID {
			return errs.ErrNotRequestParty
		}

		change, err := req.Ignore(reason, s.timeProvider.Now())
		if err != nil {
			return err
		}
		if err := requests.Transition(txCtx, change); err != nil {
			return err
		}

		description := fmt.Sprintf("Refund for declined %d MB request", req.MB)
		if reason == entity.IgnoreReasonExpired {
			description = fmt.Sprintf("Refund for expired %d MB request", req.MB)
		}
		if _, err := s.ledger.Credit(txCtx, usecase.LedgerEntry{
			UserID:      req.RequesterID,
			Coins:       req.CoinsOffered,
			Type:        entity.TransactionRefund,
			Description: description,
			RequestID:   req.ID,
		}); err != nil {
			return err
		}

		s.publishAfterCommit(txCtx, entity.EventRequestIgnored, req, change.From, req.CoinsOffered, change.At)
		ignored = req
		return nil
	})
	if err != nil {
		s.logFailure("ignore", requestID, err)
		return nil, err
	}

	s.logger.Info("Request ignored", map[string]any{
		"requestId":     ignored.ID,
		"reason":        reason,
		"coinsRefunded": ignored.CoinsOffered,
	})
	return ignored, nil
}
