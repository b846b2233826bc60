package entity

import "time"

// EventType names a committed request lifecycle change
type EventType string

const (
	EventRequestCreated   EventType = "request.created"
	EventRequestAccepted  EventType = "request.accepted"
	EventRequestIgnored   EventType = "request.ignored"
	EventRequestCompleted EventType = "request.completed"
)

// RequestEvent is emitted after a lifecycle change commits. Request is a copy
// taken at commit time.
type RequestEvent struct {
	Type          EventType
	Request       Request
	Recipients    []string
	CoinsRefunded int64
	OccurredAt    time.Time
}

// NewRequestEvent addresses the event to the party that has to react.
func NewRequestEvent(eventType EventType, req *Request, coinsRefunded int64, at time.Time) RequestEvent {
	var recipients []string
	switch eventType {
	case EventRequestCreated:
		recipients = []string{req.ProviderID}
	case EventRequestAccepted, EventRequestIgnored:
		recipients = []string{req.RequesterID}
	case EventRequestCompleted:
		recipients = []string{req.ProviderID, req.RequesterID}
	}

	return RequestEvent{
		Type:          eventType,
		Request:       *req,
		Recipients:    recipients,
		CoinsRefunded: coinsRefunded,
		OccurredAt:    at,
	}
}

// Concerns reports whether userID is a party to the event's request
func (e RequestEvent) Concerns(userID string) bool {
	return e.Request.IsParty(userID)
}
