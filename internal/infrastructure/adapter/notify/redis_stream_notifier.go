package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/messaging"
	"github.com/redis/go-redis/v9"
)

// StreamAdder is the subset of the redis client the stream notifier needs
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamMessage is the JSON document stored under the "event" field.
// Push gateways consume the stream and fan out to devices.
type StreamMessage struct {
	NotificationID string    `json:"notificationId"`
	UserID         string    `json:"userId"`
	Event          string    `json:"event"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	RequestID      string    `json:"requestId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RedisStreamNotifier appends notifications to a redis stream
type RedisStreamNotifier struct {
	client StreamAdder
	stream string
	maxLen int64
}

// NewRedisStreamNotifier creates a notifier that caps the stream at about maxLen entries
func NewRedisStreamNotifier(client StreamAdder, stream string, maxLen int64) *RedisStreamNotifier {
	return &RedisStreamNotifier{client: client, stream: stream, maxLen: maxLen}
}

var _ messaging.Notifier = (*RedisStreamNotifier)(nil)

// Name identifies the channel in logs and metrics
func (n *RedisStreamNotifier) Name() string { return "redis-stream" }

// Notify appends one stream entry
func (n *RedisStreamNotifier) Notify(ctx context.Context, notification *entity.Notification) error {
	payload, err := json.Marshal(StreamMessage{
		NotificationID: notification.ID,
		UserID:         notification.UserID,
		Event:          string(notification.Event),
		Title:          notification.Title,
		Body:           notification.Body,
		RequestID:      notification.RequestID,
		CreatedAt:      notification.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]any{
			"event": payload,
		},
	}
	if n.maxLen > 0 {
		args.MaxLen = n.maxLen
		args.Approx = true
	}

	if _, err := n.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}
