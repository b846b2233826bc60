package dto

import (
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// NotificationResponse is one inbox entry
type NotificationResponse struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	RequestID string    `json:"requestId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedEvent is one message on the live feed
type FeedEvent struct {
	Type          string          `json:"type"`
	Request       RequestResponse `json:"request"`
	CoinsRefunded int64           `json:"coinsRefunded,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// NewNotificationResponses maps inbox entries
func NewNotificationResponses(ns []*entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			Event:     string(n.Event),
			Title:     n.Title,
			Body:      n.Body,
			RequestID: n.RequestID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

// NewFeedEvent maps a committed request event
func NewFeedEvent(e entity.RequestEvent) FeedEvent {
	req := e.Request
	return FeedEvent{
		Type:          string(e.Type),
		Request:       NewRequestResponse(&req),
		CoinsRefunded: e.CoinsRefunded,
		OccurredAt:    e.OccurredAt,
	}
}
