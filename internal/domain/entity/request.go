package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

// RequestStatus is the lifecycle state of an internet sharing request
type RequestStatus string

// Request states
const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestIgnored   RequestStatus = "ignored"
	RequestCompleted RequestStatus = "completed"
)

// IsActive reports whether the request still holds escrowed coins
func (s RequestStatus) IsActive() bool {
	return s == RequestPending || s == RequestAccepted
}

// IsTerminal reports whether no further transition is possible
func (s RequestStatus) IsTerminal() bool {
	return s == RequestIgnored || s == RequestCompleted
}

// CanTransitionTo encodes pending -> accepted -> completed and pending -> ignored
func (s RequestStatus) CanTransitionTo(to RequestStatus) bool {
	switch s {
	case RequestPending:
		return to == RequestAccepted || to == RequestIgnored
	case RequestAccepted:
		return to == RequestCompleted
	default:
		return false
	}
}

// IgnoreReason records who closed a pending request without a session
type IgnoreReason string

const (
	IgnoreReasonProvider IgnoreReason = "provider"
	IgnoreReasonExpired  IgnoreReason = "expired"
)

// Request is a requester's offer of escrowed coins for a provider's data
type Request struct {
	ID           string `validate:"required"`
	RequesterID  string `validate:"required"`
	ProviderID   string `validate:"required,nefield=RequesterID"`
	MB           int64  `validate:"gt=0"`
	CoinsOffered int64  `validate:"gt=0"`
	Status       RequestStatus
	MBUsed       *int64
	CoinsSettled *int64
	IgnoreReason IgnoreReason
	ClientRef    string `validate:"max=64"`
	CreatedAt    time.Time
	AcceptedAt   *time.Time
	IgnoredAt    *time.Time
	CompletedAt  *time.Time
}

// StatusChange is a conditional state write: it applies only while the
// stored status still equals From.
type StatusChange struct {
	RequestID    string
	From         RequestStatus
	To           RequestStatus
	At           time.Time
	MBUsed       int64
	CoinsSettled int64
	IgnoreReason IgnoreReason
}

// NewRequest validates a new pending request. minMB comes from policy and is
// never below MinRequestMB.
func NewRequest(
	id string,
	requesterID string,
	providerID string,
	mb int64,
	coinsOffered int64,
	clientRef string,
	minMB int64,
	timeProvider coreport.TimeProvider,
) (*Request, error) {
	if strings.TrimSpace(requesterID) == "" || strings.TrimSpace(providerID) == "" {
		return nil, errs.ErrInvalidUserID
	}
	if requesterID == providerID {
		return nil, errs.ErrSelfRequest
	}
	if minMB < MinRequestMB {
		minMB = MinRequestMB
	}
	if mb < minMB {
		return nil, errs.ErrBelowMinimumMB
	}
	if mb > MaxRequestMB {
		return nil, errs.ErrInvalidAmount
	}
	if coinsOffered != CoinsForMB(mb) {
		return nil, errs.ErrPriceMismatch
	}

	req := &Request{
		ID:           id,
		RequesterID:  requesterID,
		ProviderID:   providerID,
		MB:           mb,
		CoinsOffered: coinsOffered,
		Status:       RequestPending,
		ClientRef:    clientRef,
		CreatedAt:    timeProvider.Now(),
	}
	if err := validateSchema("request", req); err != nil {
		return nil, err
	}
	return req, nil
}

// IsParty reports whether userID is the requester or the provider
func (r *Request) IsParty(userID string) bool {
	return userID != "" && (userID == r.RequesterID || userID == r.ProviderID)
}

// Accept moves pending -> accepted
func (r *Request) Accept(at time.Time) (StatusChange, error) {
	change, err := r.transition(RequestAccepted, at)
	if err != nil {
		return change, err
	}
	r.AcceptedAt = &at
	return change, nil
}

// Ignore moves pending -> ignored
func (r *Request) Ignore(reason IgnoreReason, at time.Time) (StatusChange, error) {
	change, err := r.transition(RequestIgnored, at)
	if err != nil {
		return change, err
	}
	change.IgnoreReason = reason
	r.IgnoreReason = reason
	r.IgnoredAt = &at
	return change, nil
}

// Complete moves accepted -> completed with the settled usage
func (r *Request) Complete(mbUsed, coinsSettled int64, at time.Time) (StatusChange, error) {
	change, err := r.transition(RequestCompleted, at)
	if err != nil {
		return change, err
	}
	change.MBUsed = mbUsed
	change.CoinsSettled = coinsSettled
	r.MBUsed = &mbUsed
	r.CoinsSettled = &coinsSettled
	r.CompletedAt = &at
	return change, nil
}

func (r *Request) transition(to RequestStatus, at time.Time) (StatusChange, error) {
	if !r.Status.CanTransitionTo(to) {
		return StatusChange{}, errs.NewTransitionError(r.ID, string(r.Status), string(to))
	}
	change := StatusChange{RequestID: r.ID, From: r.Status, To: to, At: at}
	r.Status = to
	return change, nil
}
