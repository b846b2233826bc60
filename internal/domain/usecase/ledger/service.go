package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// Service is the only component that changes balances. Each call runs in the
// caller's unit of work when there is one, otherwise in its own.
type Service struct {
	uow          persistence.UnitOfWork
	ids          coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewService creates a ledger service
func NewService(
	uow persistence.UnitOfWork,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *Service {
	return &Service{
		uow:          uow,
		ids:          ids,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

var _ usecase.LedgerUseCase = (*Service)(nil)

// Credit adds coins for any non-debit transaction type
func (s *Service) Credit(ctx context.Context, entry usecase.LedgerEntry) (*entity.Transaction, error) {
	if entry.Type.IsDebit() {
		return nil, &errs.LedgerError{UserID: entry.UserID, Operation: "credit", Coins: entry.Coins, Err: errs.ErrInvalidTransactionType}
	}
	return s.apply(ctx, "credit", entry)
}

// Debit removes coins. It fails with ErrInsufficientFunds and changes nothing
// when the balance does not cover the amount.
func (s *Service) Debit(ctx context.Context, entry usecase.LedgerEntry) (*entity.Transaction, error) {
	if !entry.Type.IsDebit() {
		return nil, &errs.LedgerError{UserID: entry.UserID, Operation: "debit", Coins: entry.Coins, Err: errs.ErrInvalidTransactionType}
	}
	return s.apply(ctx, "debit", entry)
}

func (s *Service) apply(ctx context.Context, operation string, entry usecase.LedgerEntry) (*entity.Transaction, error) {
	txn, err := entity.NewTransaction(
		s.ids.NewID(),
		entry.UserID,
		entry.Type,
		entry.Coins,
		entry.Description,
		entry.RequestID,
		s.timeProvider,
	)
	if err != nil {
		return nil, &errs.LedgerError{UserID: entry.UserID, Operation: operation, Coins: entry.Coins, Err: err}
	}

	var balance int64
	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		users := s.uow.GetUserRepository(txCtx)

		var err error
		if entry.Type.IsDebit() {
			balance, err = users.Debit(txCtx, entry.UserID, entry.Coins)
		} else {
			balance, err = users.Credit(txCtx, entry.UserID, entry.Coins)
		}
		if err != nil {
			return err
		}

		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, txn); err != nil {
			return err
		}

		s.uow.AfterCommit(txCtx, func() {
			s.metrics.LedgerEntry(string(entry.Type), entry.Coins)
		})
		return nil
	})
	if err != nil {
		ledgerErr := &errs.LedgerError{UserID: entry.UserID, Operation: operation, Coins: entry.Coins, Err: err}
		if errs.IsInsufficientFundsError(err) {
			s.metrics.LedgerRejected(string(entry.Type))
			s.logger.Info("Debit rejected", errs.LogFieldsOf(err))
		} else {
			s.logger.Error("Ledger operation failed", ledgerErr.LogFields())
		}
		return nil, ledgerErr
	}

	s.logger.Debug("Ledger entry appended", map[string]any{
		"transactionId": txn.ID,
		"userId":        entry.UserID,
		"type":          entry.Type,
		"coins":         entry.Coins,
		"requestId":     entry.RequestID,
		"balance":       balance,
	})
	return txn, nil
}

// Purchase credits bought coins. The quoted price must be exactly the tariff
// value of the coins; payment capture happens before this call.
func (s *Service) Purchase(ctx context.Context, userID string, coins int64, price decimal.Decimal) (*entity.Transaction, error) {
	if coins <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	expected := entity.CoinsToCurrency(coins)
	if !price.Equal(expected) {
		s.logger.Warn("Purchase price mismatch", map[string]any{
			"userId":   userID,
			"coins":    coins,
			"price":    price.String(),
			"expected": expected.String(),
		})
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidAmount, errs.ErrPriceMismatch)
	}

	return s.Credit(ctx, usecase.LedgerEntry{
		UserID:      userID,
		Coins:       coins,
		Type:        entity.TransactionPurchase,
		Description: fmt.Sprintf("Purchased %d coins for %s", coins, expected.StringFixed(2)),
	})
}

// Packages lists the purchasable coin bundles
func (s *Service) Packages() []entity.CoinPackage {
	return entity.CoinPackages()
}

// Wallet returns the balance summary of a user
func (s *Service) Wallet(ctx context.Context, userID string) (entity.WalletSummary, error) {
	if userID == "" {
		return entity.WalletSummary{}, errs.ErrInvalidUserID
	}
	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		return entity.WalletSummary{}, err
	}
	return user.Wallet(), nil
}
