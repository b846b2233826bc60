package repository

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// NotificationRepository stores the in-app inbox using GORM
type NotificationRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewNotificationRepository creates a new NotificationRepository instance
func NewNotificationRepository(db *gorm.DB, logger coreport.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Create inserts a notification
func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	notificationModel := model.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Event:     string(n.Event),
		Title:     n.Title,
		Body:      n.Body,
		RequestID: n.RequestID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if result := r.db.WithContext(ctx).Create(&notificationModel); result.Error != nil {
		return r.errorClassifier.MapError(result.Error, errs.ErrNotificationNotFound, nil)
	}
	return nil
}

// ListByUser returns newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notificationModels []model.Notification
	if result := query.Order("created_at DESC").Order("id").Limit(limit).Find(&notificationModels); result.Error != nil {
		r.logger.Error("Database error when listing notifications", map[string]any{
			"userId": userID,
			"error":  result.Error.Error(),
		})
		return nil, r.errorClassifier.MapError(result.Error, errs.ErrNotificationNotFound, nil)
	}

	out := make([]*entity.Notification, 0, len(notificationModels))
	for _, m := range notificationModels {
		out = append(out, &entity.Notification{
			ID:        m.ID,
			UserID:    m.UserID,
			Event:     entity.EventType(m.Event),
			Title:     m.Title,
			Body:      m.Body,
			RequestID: m.RequestID,
			Read:      m.Read,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead flags one of the user's notifications as read. Marking an already
// read notification succeeds.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return r.errorClassifier.MapError(result.Error, errs.ErrNotificationNotFound, nil)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotificationNotFound
	}
	return nil
}
