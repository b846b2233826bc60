package repository

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements the ledger journal using GORM. Rows are
// only ever inserted.
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(transaction *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Type:        string(transaction.Type),
		Coins:       transaction.Coins,
		Description: transaction.Description,
		RequestID:   transaction.RequestID,
		CreatedAt:   transaction.CreatedAt,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        entity.TransactionType(m.Type),
		Coins:       m.Coins,
		Description: m.Description,
		RequestID:   m.RequestID,
		CreatedAt:   m.CreatedAt,
	}
}

// Create appends a ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := r.entityToModel(transaction)

	if result := r.db.WithContext(ctx).Create(&transactionModel); result.Error != nil {
		r.logger.Error("Failed to append ledger entry", map[string]any{
			"transactionId": transaction.ID,
			"userId":        transaction.UserID,
			"error":         result.Error.Error(),
		})
		return r.errorClassifier.MapError(result.Error, errs.ErrInternalServer, errs.ErrConstraintViolation)
	}
	return nil
}

// ListByUser returns the newest entries first. Ids are time ordered, so
// entries written at the same instant come back in reverse write order.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, r.handleListError("listing user transactions", result.Error)
	}
	return r.toEntities(transactionModels), nil
}

// ListByRequest returns every entry tied to a request, oldest first
func (r *TransactionRepository) ListByRequest(ctx context.Context, requestID string) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at").
		Order("id").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, r.handleListError("listing request transactions", result.Error)
	}
	return r.toEntities(transactionModels), nil
}

// SignedSumByUser folds the journal into the balance it implies
func (r *TransactionRepository) SignedSumByUser(ctx context.Context, userID string) (int64, error) {
	var sum int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN -coins ELSE coins END), 0)", string(entity.TransactionSpent)).
		Where("user_id = ?", userID).
		Scan(&sum)
	if result.Error != nil {
		return 0, r.handleListError("summing user transactions", result.Error)
	}
	return sum, nil
}

func (r *TransactionRepository) toEntities(models []model.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		out = append(out, r.modelToEntity(&models[i]))
	}
	return out
}

func (r *TransactionRepository) handleListError(operation string, err error) error {
	r.logger.Error("Database error when "+operation, map[string]any{
		"error": err.Error(),
	})
	return r.errorClassifier.MapError(err, errs.ErrInternalServer, nil)
}
