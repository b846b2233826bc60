package persistence

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// NotificationRepository stores the in-app inbox
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// ListByUser returns newest first, at most limit
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error)
	// MarkRead flags one of the user's notifications as read
	//
	// Possible errors:
	// - ErrNotificationNotFound: If it doesn't exist or belongs to someone else
	MarkRead(ctx context.Context, userID, id string) error
}
