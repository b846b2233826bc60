package entity

import (
	"fmt"
	"time"
)

// Notification is an entry in a user's in-app inbox
type Notification struct {
	ID        string    `validate:"required"`
	UserID    string    `validate:"required"`
	Event     EventType `validate:"required"`
	Title     string    `validate:"required,max=120"`
	Body      string    `validate:"max=500"`
	RequestID string
	Read      bool
	CreatedAt time.Time
}

// NotificationsFor renders one notification per recipient of the event.
func NotificationsFor(event RequestEvent, newID func() string) ([]*Notification, error) {
	out := make([]*Notification, 0, len(event.Recipients))
	for _, userID := range event.Recipients {
		title, body := renderNotification(event, userID)
		n := &Notification{
			ID:        newID(),
			UserID:    userID,
			Event:     event.Type,
			Title:     title,
			Body:      body,
			RequestID: event.Request.ID,
			CreatedAt: event.OccurredAt,
		}
		if err := validateSchema("notification", n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func renderNotification(event RequestEvent, userID string) (string, string) {
	req := event.Request
	switch event.Type {
	case EventRequestCreated:
		return "New Internet Request",
			fmt.Sprintf("Someone wants %d MB of your hotspot for %d coins.", req.MB, req.CoinsOffered)
	case EventRequestAccepted:
		return "Request Accepted!",
			fmt.Sprintf("Your request for %d MB was accepted. Connect to the hotspot to start.", req.MB)
	case EventRequestIgnored:
		if req.IgnoreReason == IgnoreReasonExpired {
			return "Request Expired",
				fmt.Sprintf("No provider answered your %d MB request. %d coins were refunded.", req.MB, event.CoinsRefunded)
		}
		return "Request Declined",
			fmt.Sprintf("Your request for %d MB was declined. %d coins were refunded.", req.MB, event.CoinsRefunded)
	case EventRequestCompleted:
		var used, settled int64
		if req.MBUsed != nil {
			used = *req.MBUsed
		}
		if req.CoinsSettled != nil {
			settled = *req.CoinsSettled
		}
		if userID == req.ProviderID {
			return "Session Complete!",
				fmt.Sprintf("You earned %d coins for sharing %d MB.", settled, used)
		}
		return "Session Complete!",
			fmt.Sprintf("You used %d MB for %d coins. %d coins were refunded.", used, settled, event.CoinsRefunded)
	default:
		return string(event.Type), ""
	}
}
