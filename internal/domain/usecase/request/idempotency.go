package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// IdempotencyHandler replays creates that carry an already used client reference
type IdempotencyHandler struct{}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler() *IdempotencyHandler {
	return &IdempotencyHandler{}
}

// CheckClientRef looks up the request created earlier with the same client
// reference. It returns the request, whether it was found, and any error.
// A reference reused with a different offer is rejected.
func (h *IdempotencyHandler) CheckClientRef(
	ctx context.Context,
	requests persistence.RequestRepository,
	cmd usecase.CreateRequestCommand,
) (*entity.Request, bool, error) {
	if cmd.ClientRef == "" {
		return nil, false, nil
	}

	existing, err := requests.FindByClientRef(ctx, cmd.RequesterID, cmd.ClientRef)
	if err != nil {
		if errors.Is(err, errs.ErrRequestNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up client reference: %w", err)
	}

	if existing.ProviderID != cmd.ProviderID || existing.MB != cmd.MB || existing.CoinsOffered != cmd.CoinsOffered {
		return nil, true, fmt.Errorf("%w: client reference %q was used for a different request",
			errs.ErrInvalidRequest, cmd.ClientRef)
	}
	return existing, true, nil
}
