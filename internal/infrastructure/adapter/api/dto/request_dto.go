package dto

import (
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

// CreateRequestRequest is a requester's offer
type CreateRequestRequest struct {
	ProviderID   string `json:"providerId" binding:"required"`
	MB           int64  `json:"mb" binding:"required,gt=0"`
	CoinsOffered int64  `json:"coinsOffered" binding:"required,gt=0"`
	ClientRef    string `json:"clientRef" binding:"max=64"`
}

// CompleteRequestRequest reports the data actually used
type CompleteRequestRequest struct {
	MBUsed *int64 `json:"mbUsed" binding:"required,gte=0"`
}

// RequestResponse is a request as either party sees it
type RequestResponse struct {
	ID           string     `json:"id"`
	RequesterID  string     `json:"requesterId"`
	ProviderID   string     `json:"providerId"`
	MB           int64      `json:"mb"`
	CoinsOffered int64      `json:"coinsOffered"`
	Status       string     `json:"status"`
	MBUsed       *int64     `json:"mbUsed,omitempty"`
	CoinsSettled *int64     `json:"coinsSettled,omitempty"`
	IgnoreReason string     `json:"ignoreReason,omitempty"`
	ClientRef    string     `json:"clientRef,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	AcceptedAt   *time.Time `json:"acceptedAt,omitempty"`
	IgnoredAt    *time.Time `json:"ignoredAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// SettlementResponse is the outcome of completing a session
type SettlementResponse struct {
	Request       RequestResponse `json:"request"`
	CoinsOwed     int64           `json:"coinsOwed"`
	CoinsRefunded int64           `json:"coinsRefunded"`
}

// ProviderResponse is a provider in the directory
type ProviderResponse struct {
	UserID                  string `json:"userId"`
	Name                    string `json:"name"`
	TotalMBShared           int64  `json:"totalMbShared"`
	TotalSessionsAsProvider int64  `json:"totalSessionsAsProvider"`
}

// QuoteResponse prices a data amount
type QuoteResponse struct {
	MB            int64  `json:"mb"`
	Coins         int64  `json:"coins"`
	CurrencyValue string `json:"currencyValue"`
	MinMB         int64  `json:"minMb"`
}

// NewRequestResponse maps a request
func NewRequestResponse(r *entity.Request) RequestResponse {
	return RequestResponse{
		ID:           r.ID,
		RequesterID:  r.RequesterID,
		ProviderID:   r.ProviderID,
		MB:           r.MB,
		CoinsOffered: r.CoinsOffered,
		Status:       string(r.Status),
		MBUsed:       r.MBUsed,
		CoinsSettled: r.CoinsSettled,
		IgnoreReason: string(r.IgnoreReason),
		ClientRef:    r.ClientRef,
		CreatedAt:    r.CreatedAt,
		AcceptedAt:   r.AcceptedAt,
		IgnoredAt:    r.IgnoredAt,
		CompletedAt:  r.CompletedAt,
	}
}

// NewRequestResponses maps a list of requests
func NewRequestResponses(reqs []*entity.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, NewRequestResponse(r))
	}
	return out
}

// NewSettlementResponse maps a settlement
func NewSettlementResponse(res *usecase.SettlementResult) SettlementResponse {
	return SettlementResponse{
		Request:       NewRequestResponse(res.Request),
		CoinsOwed:     res.CoinsOwed,
		CoinsRefunded: res.CoinsRefunded,
	}
}

// NewProviderResponses maps the provider directory
func NewProviderResponses(providers []entity.ProviderSummary) []ProviderResponse {
	out := make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, ProviderResponse(p))
	}
	return out
}
