package request

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
)

// Accept lets the addressed provider take a pending request. Of two
// concurrent Accept or Ignore calls exactly one succeeds.
func (s *Service) Accept(ctx context.Context, providerID, requestID string) (*entity.Request, error) {
	if err := s.validator.ValidateAction(providerID, requestID); err != nil {
		return nil, err
	}

	var accepted *entity.Request
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		requests := s.uow.GetRequestRepository(txCtx)

		req, err := requests.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if req.ProviderID != providerID {
			return errs.ErrNotRequestParty
		}

		change, err := req.Accept(s.timeProvider.Now())
		if err != nil {
			return err
		}
		if err := requests.Transition(txCtx, change); err != nil {
			return err
		}

		s.publishAfterCommit(txCtx, entity.EventRequestAccepted, req, change.From, 0, change.At)
		accepted = req
		return nil
	})
	if err != nil {
		s.logFailure("accept", requestID, err)
		return nil, err
	}

	s.logger.Info("Request accepted", map[string]any{
		"requestId":  accepted.ID,
		"providerId": providerID,
	})
	return accepted, nil
}
