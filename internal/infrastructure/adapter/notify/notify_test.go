package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	mockpersistence "github.com/amirhossein-jamali/hotfinet-ledger/mocks/port/persistence"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingStream struct {
	args []*redis.XAddArgs
	err  error
}

func (r *recordingStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	r.args = append(r.args, a)
	if r.err != nil {
		return redis.NewStringResult("", r.err)
	}
	return redis.NewStringResult("1-0", nil)
}

func sampleNotification() *entity.Notification {
	return &entity.Notification{
		ID:        "n-1",
		UserID:    "u-1",
		Event:     entity.EventRequestAccepted,
		Title:     "Request Accepted!",
		Body:      "Your request for 200 MB was accepted.",
		RequestID: "r-1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRedisStreamNotifier_Notify(t *testing.T) {
	stream := &recordingStream{}
	n := NewRedisStreamNotifier(stream, "hotfinet.notifications", 1000)

	require.NoError(t, n.Notify(context.Background(), sampleNotification()))
	require.Len(t, stream.args, 1)

	args := stream.args[0]
	assert.Equal(t, "hotfinet.notifications", args.Stream)
	assert.Equal(t, int64(1000), args.MaxLen)
	assert.True(t, args.Approx)

	var msg StreamMessage
	require.NoError(t, json.Unmarshal(args.Values.(map[string]any)["event"].([]byte), &msg))
	assert.Equal(t, "u-1", msg.UserID)
	assert.Equal(t, "request.accepted", msg.Event)
	assert.Equal(t, "r-1", msg.RequestID)
}

func TestRedisStreamNotifier_Error(t *testing.T) {
	stream := &recordingStream{err: errors.New("connection refused")}
	n := NewRedisStreamNotifier(stream, "s", 0)

	err := n.Notify(context.Background(), sampleNotification())
	assert.ErrorContains(t, err, "connection refused")
	assert.Zero(t, stream.args[0].MaxLen)
	assert.Equal(t, "redis-stream", n.Name())
}

func TestInboxNotifier_Notify(t *testing.T) {
	uow := mockpersistence.NewMockUnitOfWork(t)
	repo := mockpersistence.NewMockNotificationRepository(t)
	notification := sampleNotification()

	uow.On("Execute", mock.Anything, mock.Anything).Return(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	})
	uow.On("GetNotificationRepository", mock.Anything).Return(repo)
	repo.On("Create", mock.Anything, notification).Return(nil)

	n := NewInboxNotifier(uow)
	assert.Equal(t, "inbox", n.Name())
	assert.NoError(t, n.Notify(context.Background(), notification))
}
