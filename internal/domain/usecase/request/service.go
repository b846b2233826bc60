package request

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// Policy holds the tunable parts of the request lifecycle
type Policy struct {
	MinMB int64
	// ExpireAfter closes pending requests older than this; zero disables expiry
	ExpireAfter   time.Duration
	SweepInterval time.Duration
	SweepBatch    int
}

// Service drives requests through pending -> accepted -> completed and
// pending -> ignored, moving escrowed coins through the ledger
type Service struct {
	uow          persistence.UnitOfWork
	ledger       usecase.LedgerUseCase
	settlement   usecase.SettlementUseCase
	dispatcher   usecase.NotificationDispatcher
	ids          coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics

	validator   *Validator
	idempotency *IdempotencyHandler
}

// NewService creates the request service
func NewService(
	uow persistence.UnitOfWork,
	ledger usecase.LedgerUseCase,
	settlement usecase.SettlementUseCase,
	dispatcher usecase.NotificationDispatcher,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	policy Policy,
) *Service {
	return &Service{
		uow:          uow,
		ledger:       ledger,
		settlement:   settlement,
		dispatcher:   dispatcher,
		ids:          ids,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		validator:    NewValidator(policy.MinMB),
		idempotency:  NewIdempotencyHandler(),
	}
}

var _ usecase.RequestUseCase = (*Service)(nil)

// publishAfterCommit records the transition and hands the event to the
// dispatcher once the surrounding transaction has committed
func (s *Service) publishAfterCommit(
	ctx context.Context,
	eventType entity.EventType,
	req *entity.Request,
	from entity.RequestStatus,
	coinsRefunded int64,
	at time.Time,
) {
	event := entity.NewRequestEvent(eventType, req, coinsRefunded, at)
	s.uow.AfterCommit(ctx, func() {
		s.metrics.RequestTransition(string(from), string(event.Request.Status))
		s.dispatcher.Dispatch(event)
	})
}

func (s *Service) logFailure(operation, requestID string, err error) {
	fields := errs.LogFieldsOf(err)
	fields["operation"] = operation
	if requestID != "" {
		fields["requestId"] = requestID
	}

	switch errs.ErrorCode(err) {
	case errs.CodeInternalServer, errs.CodeCollaboratorUnavailable:
		s.logger.Error("Request operation failed", fields)
	default:
		s.logger.Info("Request operation rejected", fields)
	}
}
