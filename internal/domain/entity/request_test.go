package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/hotfinet-ledger/mocks/port/core"
)

func TestNewRequest(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	t.Run("Valid request starts pending", func(t *testing.T) {
		req, err := NewRequest("r-1", "u-a", "u-b", 200, 100, "ref-1", MinRequestMB, mockTime)

		require.NoError(t, err)
		assert.Equal(t, RequestPending, req.Status)
		assert.Nil(t, req.MBUsed)
		assert.Nil(t, req.AcceptedAt)
		assert.Equal(t, fixedTime, req.CreatedAt)
	})

	testCases := []struct {
		name      string
		requester string
		provider  string
		mb        int64
		coins     int64
		expected  error
	}{
		{"self request", "u-a", "u-a", 200, 100, errs.ErrSelfRequest},
		{"missing provider", "u-a", "", 200, 100, errs.ErrInvalidUserID},
		{"below minimum", "u-a", "u-b", 49, 25, errs.ErrBelowMinimumMB},
		{"above maximum", "u-a", "u-b", MaxRequestMB + 1, CoinsForMB(MaxRequestMB + 1), errs.ErrInvalidAmount},
		{"underpriced", "u-a", "u-b", 200, 99, errs.ErrPriceMismatch},
		{"overpriced", "u-a", "u-b", 50, 26, errs.ErrPriceMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := NewRequest("r-1", tc.requester, tc.provider, tc.mb, tc.coins, "", MinRequestMB, mockTime)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, req)
		})
	}

	t.Run("policy minimum can only raise the floor", func(t *testing.T) {
		_, err := NewRequest("r-1", "u-a", "u-b", 60, 30, "", 100, mockTime)
		assert.ErrorIs(t, err, errs.ErrBelowMinimumMB)

		_, err = NewRequest("r-1", "u-a", "u-b", 40, 20, "", 10, mockTime)
		assert.ErrorIs(t, err, errs.ErrBelowMinimumMB)
	})
}

func TestRequestStatusTransitions(t *testing.T) {
	all := []RequestStatus{RequestPending, RequestAccepted, RequestIgnored, RequestCompleted}
	legal := map[RequestStatus][]RequestStatus{
		RequestPending:  {RequestAccepted, RequestIgnored},
		RequestAccepted: {RequestCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			allowed := false
			for _, l := range legal[from] {
				if l == to {
					allowed = true
				}
			}
			assert.Equal(t, allowed, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, RequestPending.IsActive())
	assert.True(t, RequestAccepted.IsActive())
	assert.True(t, RequestIgnored.IsTerminal())
	assert.True(t, RequestCompleted.IsTerminal())
}

func TestRequestLifecycle(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("accept then complete", func(t *testing.T) {
		req := &Request{ID: "r-1", RequesterID: "a", ProviderID: "b", MB: 200, CoinsOffered: 100, Status: RequestPending}

		change, err := req.Accept(at)
		require.NoError(t, err)
		assert.Equal(t, StatusChange{RequestID: "r-1", From: RequestPending, To: RequestAccepted, At: at}, change)
		assert.Equal(t, at, *req.AcceptedAt)

		change, err = req.Complete(100, 50, at.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, RequestAccepted, change.From)
		assert.Equal(t, int64(100), change.MBUsed)
		assert.Equal(t, int64(50), *req.CoinsSettled)
		assert.Equal(t, RequestCompleted, req.Status)
	})

	t.Run("terminal states reject everything", func(t *testing.T) {
		req := &Request{ID: "r-2", Status: RequestPending}
		_, err := req.Ignore(IgnoreReasonProvider, at)
		require.NoError(t, err)
		assert.Equal(t, IgnoreReasonProvider, req.IgnoreReason)

		_, err = req.Accept(at)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		_, err = req.Ignore(IgnoreReasonProvider, at)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		_, err = req.Complete(0, 0, at)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, RequestIgnored, req.Status)
	})

	t.Run("pending cannot complete", func(t *testing.T) {
		req := &Request{ID: "r-3", Status: RequestPending}
		_, err := req.Complete(10, 5, at)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, RequestPending, req.Status)
	})
}

func TestRequestIsParty(t *testing.T) {
	req := &Request{RequesterID: "a", ProviderID: "b"}
	assert.True(t, req.IsParty("a"))
	assert.True(t, req.IsParty("b"))
	assert.False(t, req.IsParty("c"))
	assert.False(t, req.IsParty(""))
}
