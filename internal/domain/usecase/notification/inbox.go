package notification

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

const (
	defaultInboxLimit = 50
	maxInboxLimit     = 200
)

// Inbox reads the in-app notifications written by the inbox notifier
type Inbox struct {
	uow persistence.UnitOfWork
}

// NewInbox creates an Inbox
func NewInbox(uow persistence.UnitOfWork) *Inbox {
	return &Inbox{uow: uow}
}

var _ usecase.InboxUseCase = (*Inbox)(nil)

// List returns the newest notifications first
func (i *Inbox) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	switch {
	case limit <= 0:
		limit = defaultInboxLimit
	case limit > maxInboxLimit:
		limit = maxInboxLimit
	}
	return i.uow.GetNotificationRepository(ctx).ListByUser(ctx, userID, unreadOnly, limit)
}

// MarkRead acknowledges one of the user's notifications
func (i *Inbox) MarkRead(ctx context.Context, userID, notificationID string) error {
	if userID == "" {
		return errs.ErrInvalidUserID
	}
	if notificationID == "" {
		return errs.ErrNotificationNotFound
	}
	return i.uow.GetNotificationRepository(ctx).MarkRead(ctx, userID, notificationID)
}
