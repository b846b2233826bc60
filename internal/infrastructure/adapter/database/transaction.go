package database

import (
	"context"
	"fmt"
	"strings"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// txState is what a running unit carries in its context
type txState struct {
	db          *gorm.DB
	afterCommit []func()
}

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	errorMapper  *ErrorMapper
	retryConfig  RetryConfig
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  NewErrorMapper(),
		retryConfig:  DefaultRetryConfig(),
	}
}

// WithRetryConfig replaces the retry policy used for top-level units
func (u *UnitOfWork) WithRetryConfig(config RetryConfig) *UnitOfWork {
	u.retryConfig = config
	return u
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// Execute runs fn atomically. Nested calls join the outer transaction and
// only the outermost call retries transient failures.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	if stateFrom(ctx) != nil {
		return fn(ctx)
	}
	return RetryOnTransientError(ctx, u.retryConfig, func() error {
		return u.executeOnce(ctx, fn)
	}, u.logger)
}

func (u *UnitOfWork) executeOnce(ctx context.Context, fn func(txCtx context.Context) error) (err error) {
	txCtx, err := u.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = u.Rollback(txCtx)
			panic(r)
		}
	}()

	if err = fn(txCtx); err != nil {
		if rbErr := u.Rollback(txCtx); rbErr != nil {
			u.logger.Error("Rollback after failed unit failed", map[string]any{
				"error":         err.Error(),
				"rollbackError": rbErr.Error(),
			})
		}
		return err
	}

	if err = u.Commit(txCtx); err != nil {
		return err
	}

	for _, hook := range stateFrom(txCtx).afterCommit {
		hook()
	}
	return nil
}

// AfterCommit queues fn on the running unit, or runs it now when there is none
func (u *UnitOfWork) AfterCommit(ctx context.Context, fn func()) {
	state := stateFrom(ctx)
	if state == nil {
		fn()
		return
	}
	state.afterCommit = append(state.afterCommit, fn)
}

// Begin starts a new database transaction. PostgreSQL units run SERIALIZABLE.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, u.errorMapper.MapError(tx.Error, "begin")
	}

	if u.db.Dialector.Name() == "postgres" {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL SERIALIZABLE").Error; err != nil {
			tx.Rollback()
			u.logger.Error("Failed to set transaction isolation level", map[string]any{"error": err.Error()})
			return ctx, u.errorMapper.MapError(err, "begin")
		}
	}

	return context.WithValue(ctx, txKey, &txState{db: tx}), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	state := stateFrom(ctx)
	if state == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := state.db.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return u.errorMapper.MapError(err, "commit")
	}
	return nil
}

// Rollback rolls back the current transaction
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	state := stateFrom(ctx)
	if state == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := state.db.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// GetUserRepository returns a user repository in the current transaction
func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetTransactionRepository returns a ledger journal in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// GetRequestRepository returns a request repository in the current transaction
func (u *UnitOfWork) GetRequestRepository(ctx context.Context) persistence.RequestRepository {
	return repository.NewRequestRepository(u.getDbFromContext(ctx), u.logger)
}

// GetNotificationRepository returns an inbox repository in the current transaction
func (u *UnitOfWork) GetNotificationRepository(ctx context.Context) persistence.NotificationRepository {
	return repository.NewNotificationRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	if state := stateFrom(ctx); state != nil {
		return state.db
	}
	return u.db.WithContext(ctx)
}

func stateFrom(ctx context.Context) *txState {
	state, _ := ctx.Value(txKey).(*txState)
	return state
}
