package request

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// Complete ends an accepted session. Either party may report the usage; the
// settlement engine pays the provider and refunds the unused escrow.
func (s *Service) Complete(ctx context.Context, actorID, requestID string, mbUsed int64) (*usecase.SettlementResult, error) {
	if err := s.validator.ValidateAction(actorID, requestID); err != nil {
		return nil, err
	}
	return s.settlement.Settle(ctx, actorID, requestID, mbUsed)
}
