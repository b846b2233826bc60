package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) *entity.User {
	user := &entity.User{
		ID:           userModel.ID,
		Email:        userModel.Email,
		Name:         userModel.Name,
		Role:         entity.Role(userModel.Role),
		PasswordHash: userModel.PasswordHash,
		IsAvailable:  userModel.IsAvailable,
		Stats: entity.UsageStats{
			TotalMBShared:            userModel.TotalMBShared,
			TotalMBConsumed:          userModel.TotalMBConsumed,
			TotalSessionsAsProvider:  userModel.TotalSessionsAsProvider,
			TotalSessionsAsRequester: userModel.TotalSessionsAsRequester,
		},
		CreatedAt: userModel.CreatedAt,
		UpdatedAt: userModel.UpdatedAt,
	}
	user.SetCoins(userModel.Coins)
	return user
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID string) error {
	mapped := r.errorClassifier.MapError(err, errs.ErrUserNotFound, errs.ErrDuplicateUser)
	if errors.Is(mapped, errs.ErrUserNotFound) || errors.Is(mapped, errs.ErrDuplicateUser) {
		r.logger.Debug(fmt.Sprintf("User lookup failed when %s", operation), map[string]any{
			"userId": userID,
			"error":  mapped.Error(),
		})
		return mapped
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"userId": userID,
		"error":  err.Error(),
	})
	return mapped
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by email", result.Error, "")
	}
	return r.modelToEntity(&userModel), nil
}

// Create inserts the account with a zero balance. Coins only ever arrive
// through Credit.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		PasswordHash: user.PasswordHash,
		Coins:        0,
		IsAvailable:  user.IsAvailable,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if result := r.db.WithContext(ctx).Create(&userModel); result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.ID)
	}

	r.logger.Debug("User created", map[string]any{
		"userId": user.ID,
	})
	return nil
}

// Credit adds coins in a single statement and returns the new balance
func (r *UserRepository) Credit(ctx context.Context, id string, coins int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"coins":      gorm.Expr("coins + ?", coins),
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return 0, r.handleDatabaseError("crediting user", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return 0, errs.ErrUserNotFound
	}
	return r.balance(ctx, id)
}

// Debit removes coins only while the balance covers them. The guard lives in
// the UPDATE itself so concurrent debits can never overdraw.
func (r *UserRepository) Debit(ctx context.Context, id string, coins int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND coins >= ?", id, coins).
		Updates(map[string]any{
			"coins":      gorm.Expr("coins - ?", coins),
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return 0, r.handleDatabaseError("debiting user", result.Error, id)
	}

	if result.RowsAffected == 0 {
		available, err := r.balance(ctx, id)
		if err != nil {
			return 0, err
		}
		r.logger.Info("Insufficient balance for debit", map[string]any{
			"userId":    id,
			"required":  coins,
			"available": available,
		})
		return 0, errs.NewInsufficientFundsError(id, coins, available)
	}
	return r.balance(ctx, id)
}

func (r *UserRepository) balance(ctx context.Context, id string) (int64, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Select("coins").Where("id = ?", id).First(&userModel)
	if result.Error != nil {
		return 0, r.handleDatabaseError("reading balance", result.Error, id)
	}
	return userModel.Coins, nil
}

// RecordProviderSession adds shared MB and one provider session
func (r *UserRepository) RecordProviderSession(ctx context.Context, id string, mb int64) error {
	return r.updateColumns(ctx, id, "recording provider session", map[string]any{
		"total_mb_shared":            gorm.Expr("total_mb_shared + ?", mb),
		"total_sessions_as_provider": gorm.Expr("total_sessions_as_provider + 1"),
	})
}

// RecordRequesterSession adds consumed MB and one requester session
func (r *UserRepository) RecordRequesterSession(ctx context.Context, id string, mb int64) error {
	return r.updateColumns(ctx, id, "recording requester session", map[string]any{
		"total_mb_consumed":           gorm.Expr("total_mb_consumed + ?", mb),
		"total_sessions_as_requester": gorm.Expr("total_sessions_as_requester + 1"),
	})
}

// SetAvailability toggles provider listing
func (r *UserRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	return r.updateColumns(ctx, id, "setting availability", map[string]any{
		"is_available": available,
	})
}

// UpdateProfile persists the editable fields
func (r *UserRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	return r.updateColumns(ctx, user.ID, "updating profile", map[string]any{
		"name": user.Name,
	})
}

func (r *UserRepository) updateColumns(ctx context.Context, id, operation string, updates map[string]any) error {
	updates["updated_at"] = r.timeProvider.Now()

	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return r.handleDatabaseError(operation, result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// ListAvailable returns every available account ordered by sharing history
func (r *UserRepository) ListAvailable(ctx context.Context, excludeID string) ([]*entity.User, error) {
	query := r.db.WithContext(ctx).Where("is_available = ?", true)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var userModels []model.User
	result := query.Order("total_mb_shared DESC").Order("id").Find(&userModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing providers", result.Error, excludeID)
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, r.modelToEntity(&userModels[i]))
	}
	return users, nil
}
