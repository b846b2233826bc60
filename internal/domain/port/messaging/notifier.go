package messaging

import (
	"context"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// Notifier delivers a notification over one channel. Delivery is best
// effort: callers log failures and never roll back on them.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, notification *entity.Notification) error
}

// EventPublisher fans committed request events out to live subscribers.
// Publish must not block.
type EventPublisher interface {
	Publish(event entity.RequestEvent)
}
