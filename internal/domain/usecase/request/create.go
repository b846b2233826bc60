package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// Create opens a pending request and escrows the offered coins from the
// requester in the same unit. Nothing is written when the debit fails.
func (s *Service) Create(ctx context.Context, cmd usecase.CreateRequestCommand) (*entity.Request, error) {
	if err := s.validator.ValidateCreate(cmd); err != nil {
		s.logFailure("create", "", err)
		return nil, err
	}

	var (
		created  *entity.Request
		replayed bool
	)
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		requests := s.uow.GetRequestRepository(txCtx)

		existing, found, err := s.idempotency.CheckClientRef(txCtx, requests, cmd)
		if err != nil {
			return err
		}
		if found {
			created, replayed = existing, true
			return nil
		}

		provider, err := s.uow.GetUserRepository(txCtx).GetByID(txCtx, cmd.ProviderID)
		if err != nil {
			return err
		}
		if !provider.IsAvailable {
			return errs.ErrProviderUnavailable
		}

		if _, err := requests.FindActiveByRequester(txCtx, cmd.RequesterID); err == nil {
			return errs.ErrActiveRequestExists
		} else if !errors.Is(err, errs.ErrRequestNotFound) {
			return err
		}

		req, err := entity.NewRequest(
			s.ids.NewID(),
			cmd.RequesterID,
			cmd.ProviderID,
			cmd.MB,
			cmd.CoinsOffered,
			cmd.ClientRef,
			s.validator.MinMB(),
			s.timeProvider,
		)
		if err != nil {
			return err
		}
		if err := requests.Create(txCtx, req); err != nil {
			return err
		}

		if _, err := s.ledger.Debit(txCtx, usecase.LedgerEntry{
			UserID:      req.RequesterID,
			Coins:       req.CoinsOffered,
			Type:        entity.TransactionSpent,
			Description: fmt.Sprintf("Requested %d MB", req.MB),
			RequestID:   req.ID,
		}); err != nil {
			return err
		}

		s.publishAfterCommit(txCtx, entity.EventRequestCreated, req, "", 0, req.CreatedAt)
		created = req
		return nil
	})
	if err != nil {
		s.logFailure("create", "", err)
		return nil, err
	}

	if replayed {
		s.logger.Info("Replayed request create", map[string]any{
			"requestId": created.ID,
			"clientRef": cmd.ClientRef,
		})
		return created, nil
	}

	s.logger.Info("Request created", map[string]any{
		"requestId":    created.ID,
		"requesterId":  created.RequesterID,
		"providerId":   created.ProviderID,
		"mb":           created.MB,
		"coinsOffered": created.CoinsOffered,
	})
	return created, nil
}
