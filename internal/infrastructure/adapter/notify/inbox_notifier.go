package notify

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/persistence"
)

// InboxNotifier stores notifications in the in-app inbox table
type InboxNotifier struct {
	uow persistence.UnitOfWork
}

// NewInboxNotifier creates a new inbox notifier
func NewInboxNotifier(uow persistence.UnitOfWork) *InboxNotifier {
	return &InboxNotifier{uow: uow}
}

var _ messaging.Notifier = (*InboxNotifier)(nil)

// Name identifies the channel in logs and metrics
func (n *InboxNotifier) Name() string { return "inbox" }

// Notify inserts the notification
func (n *InboxNotifier) Notify(ctx context.Context, notification *entity.Notification) error {
	return n.uow.Execute(ctx, func(txCtx context.Context) error {
		return n.uow.GetNotificationRepository(txCtx).Create(txCtx, notification)
	})
}
