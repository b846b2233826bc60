package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/logger"
	usecasemocks "github.com/amirhossein-jamali/hotfinet-ledger/mocks/port/usecase"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRouter authenticates every request as userID
func newRouter(userID string) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.UserIDKey, userID)
		}
		c.Next()
	})
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func pendingRequest() *entity.Request {
	return &entity.Request{
		ID:           "req-1",
		RequesterID:  "alice",
		ProviderID:   "bob",
		MB:           200,
		CoinsOffered: 100,
		Status:       entity.RequestPending,
		CreatedAt:    fixedTime,
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domainerr.NewInsufficientFundsError("alice", 100, 30), http.StatusPaymentRequired},
		{domainerr.ErrInvalidAmount, http.StatusBadRequest},
		{domainerr.ErrBelowMinimumMB, http.StatusBadRequest},
		{domainerr.ErrInvalidCredentials, http.StatusUnauthorized},
		{domainerr.ErrNotRequestParty, http.StatusForbidden},
		{domainerr.ErrRequestNotFound, http.StatusNotFound},
		{domainerr.ErrUserNotFound, http.StatusNotFound},
		{domainerr.NewTransitionError("req-1", "ignored", "accepted"), http.StatusConflict},
		{domainerr.ErrActiveRequestExists, http.StatusConflict},
		{domainerr.ErrDuplicateUser, http.StatusConflict},
		{domainerr.ErrProviderUnavailable, http.StatusConflict},
		{domainerr.NewUsageError("req-1", 200, 300), http.StatusUnprocessableEntity},
		{domainerr.ErrCollaboratorUnavailable, http.StatusServiceUnavailable},
		{domainerr.ErrTransientConflict, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, StatusFor(domainerr.ErrorCode(tt.err)))
		})
	}
}

func TestRequestHandler_Create(t *testing.T) {
	t.Run("creates request for the authenticated requester", func(t *testing.T) {
		requests := usecasemocks.NewMockRequestUseCase(t)
		queries := usecasemocks.NewMockQueryUseCase(t)
		h := NewRequestHandler(requests, queries, logger.NewNoopLogger())

		requests.On("Create", mock.Anything, usecase.CreateRequestCommand{
			RequesterID:  "alice",
			ProviderID:   "bob",
			MB:           200,
			CoinsOffered: 100,
			ClientRef:    "ref-1",
		}).Return(pendingRequest(), nil)

		router := newRouter("alice")
		router.POST("/requests", h.Create)

		w := doJSON(t, router, http.MethodPost, "/requests", dto.CreateRequestRequest{
			ProviderID: "bob", MB: 200, CoinsOffered: 100, ClientRef: "ref-1",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.RequestResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "req-1", resp.ID)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("insufficient funds maps to payment required", func(t *testing.T) {
		requests := usecasemocks.NewMockRequestUseCase(t)
		h := NewRequestHandler(requests, usecasemocks.NewMockQueryUseCase(t), logger.NewNoopLogger())

		requests.On("Create", mock.Anything, mock.Anything).
			Return(nil, domainerr.NewInsufficientFundsError("alice", 100, 30))

		router := newRouter("alice")
		router.POST("/requests", h.Create)

		w := doJSON(t, router, http.MethodPost, "/requests", dto.CreateRequestRequest{
			ProviderID: "bob", MB: 200, CoinsOffered: 100,
		})

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, domainerr.CodeInsufficientFunds, resp.Code)
		assert.Contains(t, resp.Message, "recharge to continue")
		assert.EqualValues(t, 30, resp.Details["available"])
	})

	t.Run("rejects malformed body without calling the use case", func(t *testing.T) {
		requests := usecasemocks.NewMockRequestUseCase(t)
		h := NewRequestHandler(requests, usecasemocks.NewMockQueryUseCase(t), logger.NewNoopLogger())

		router := newRouter("alice")
		router.POST("/requests", h.Create)

		w := doJSON(t, router, http.MethodPost, "/requests", map[string]any{"providerId": "bob"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeInvalidRequest, decodeError(t, w).Code)
	})
}

func TestRequestHandler_Lifecycle(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(r *usecasemocks.MockRequestUseCase)
		body       any
		wantStatus int
	}{
		{
			name: "accept",
			path: "/requests/req-1/accept",
			setup: func(r *usecasemocks.MockRequestUseCase) {
				accepted := pendingRequest()
				accepted.Status = entity.RequestAccepted
				r.On("Accept", mock.Anything, "bob", "req-1").Return(accepted, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "second accept conflicts",
			path: "/requests/req-1/accept",
			setup: func(r *usecasemocks.MockRequestUseCase) {
				r.On("Accept", mock.Anything, "bob", "req-1").
					Return(nil, domainerr.NewTransitionError("req-1", "accepted", "accepted"))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "ignore by stranger is forbidden",
			path: "/requests/req-1/ignore",
			setup: func(r *usecasemocks.MockRequestUseCase) {
				r.On("Ignore", mock.Anything, "bob", "req-1").Return(nil, domainerr.ErrNotRequestParty)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "complete settles",
			path: "/requests/req-1/complete",
			body: map[string]any{"mbUsed": 100},
			setup: func(r *usecasemocks.MockRequestUseCase) {
				completed := pendingRequest()
				completed.Status = entity.RequestCompleted
				r.On("Complete", mock.Anything, "bob", "req-1", int64(100)).Return(&usecase.SettlementResult{
					Request:       completed,
					CoinsOwed:     50,
					CoinsRefunded: 50,
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "complete with excess usage",
			path: "/requests/req-1/complete",
			body: map[string]any{"mbUsed": 300},
			setup: func(r *usecasemocks.MockRequestUseCase) {
				r.On("Complete", mock.Anything, "bob", "req-1", int64(300)).
					Return(nil, domainerr.NewUsageError("req-1", 200, 300))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "complete without usage",
			path:       "/requests/req-1/complete",
			body:       map[string]any{},
			setup:      func(r *usecasemocks.MockRequestUseCase) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := usecasemocks.NewMockRequestUseCase(t)
			tt.setup(requests)
			h := NewRequestHandler(requests, usecasemocks.NewMockQueryUseCase(t), logger.NewNoopLogger())

			router := newRouter("bob")
			router.POST("/requests/:requestId/accept", h.Accept)
			router.POST("/requests/:requestId/ignore", h.Ignore)
			router.POST("/requests/:requestId/complete", h.Complete)

			w := doJSON(t, router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestRequestHandler_Active(t *testing.T) {
	t.Run("no active request is no content", func(t *testing.T) {
		queries := usecasemocks.NewMockQueryUseCase(t)
		queries.On("ActiveRequestFor", mock.Anything, "alice").Return(nil, domainerr.ErrRequestNotFound)
		h := NewRequestHandler(usecasemocks.NewMockRequestUseCase(t), queries, logger.NewNoopLogger())

		router := newRouter("alice")
		router.GET("/requests/active", h.Active)

		w := doJSON(t, router, http.MethodGet, "/requests/active", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("collaborator outage is retryable", func(t *testing.T) {
		queries := usecasemocks.NewMockQueryUseCase(t)
		queries.On("ActiveRequestFor", mock.Anything, "alice").
			Return(nil, fmt.Errorf("%w: connection refused", domainerr.ErrCollaboratorUnavailable))
		h := NewRequestHandler(usecasemocks.NewMockRequestUseCase(t), queries, logger.NewNoopLogger())

		router := newRouter("alice")
		router.GET("/requests/active", h.Active)

		w := doJSON(t, router, http.MethodGet, "/requests/active", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeError(t, w)
		assert.True(t, resp.Retryable)
		assert.NotContains(t, resp.Message, "connection refused")
	})
}

func TestWalletHandler(t *testing.T) {
	t.Run("wallet", func(t *testing.T) {
		ledger := usecasemocks.NewMockLedgerUseCase(t)
		ledger.On("Wallet", mock.Anything, "alice").Return(entity.WalletSummary{
			UserID: "alice", Coins: 1000, CurrencyValue: "10.00", MBEquivalent: 2000,
		}, nil)
		h := NewWalletHandler(ledger, usecasemocks.NewMockQueryUseCase(t), 50, logger.NewNoopLogger())

		router := newRouter("alice")
		router.GET("/wallet", h.Wallet)

		w := doJSON(t, router, http.MethodGet, "/wallet", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.WalletResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1000), resp.Coins)
		assert.Equal(t, int64(2000), resp.MBEquivalent)
	})

	t.Run("purchase parses price", func(t *testing.T) {
		ledger := usecasemocks.NewMockLedgerUseCase(t)
		ledger.On("Purchase", mock.Anything, "alice", int64(1000), mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("10"))
		})).Return(&entity.Transaction{
			ID: "tx-1", UserID: "alice", Type: entity.TransactionPurchase, Coins: 1000, CreatedAt: fixedTime,
		}, nil)
		h := NewWalletHandler(ledger, usecasemocks.NewMockQueryUseCase(t), 50, logger.NewNoopLogger())

		router := newRouter("alice")
		router.POST("/wallet/purchase", h.Purchase)

		w := doJSON(t, router, http.MethodPost, "/wallet/purchase", dto.PurchaseRequest{Coins: 1000, Price: "10.00"})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.TransactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1000), resp.SignedCoins)
	})

	t.Run("purchase rejects unparsable price", func(t *testing.T) {
		h := NewWalletHandler(usecasemocks.NewMockLedgerUseCase(t), usecasemocks.NewMockQueryUseCase(t), 50, logger.NewNoopLogger())

		router := newRouter("alice")
		router.POST("/wallet/purchase", h.Purchase)

		w := doJSON(t, router, http.MethodPost, "/wallet/purchase", dto.PurchaseRequest{Coins: 1000, Price: "ten"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeInvalidAmount, decodeError(t, w).Code)
	})

	t.Run("transactions passes limit", func(t *testing.T) {
		queries := usecasemocks.NewMockQueryUseCase(t)
		queries.On("TransactionHistory", mock.Anything, "alice", 10).Return([]*entity.Transaction{
			{ID: "tx-2", UserID: "alice", Type: entity.TransactionSpent, Coins: 100, CreatedAt: fixedTime},
		}, nil)
		h := NewWalletHandler(usecasemocks.NewMockLedgerUseCase(t), queries, 50, logger.NewNoopLogger())

		router := newRouter("alice")
		router.GET("/wallet/transactions", h.Transactions)

		w := doJSON(t, router, http.MethodGet, "/wallet/transactions?limit=10", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []dto.TransactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, int64(-100), resp[0].SignedCoins)
	})

	t.Run("quote", func(t *testing.T) {
		h := NewWalletHandler(usecasemocks.NewMockLedgerUseCase(t), usecasemocks.NewMockQueryUseCase(t), 50, logger.NewNoopLogger())

		router := newRouter("")
		router.GET("/quote", h.Quote)

		w := doJSON(t, router, http.MethodGet, "/quote?mb=200", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.QuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(100), resp.Coins)
		assert.Equal(t, int64(50), resp.MinMB)

		w = doJSON(t, router, http.MethodGet, "/quote?mb=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

type stubTokens struct{}

func (stubTokens) Issue(user *entity.User) (string, time.Time, error) {
	return "token-for-" + user.ID, fixedTime.Add(time.Hour), nil
}

func TestAccountHandler(t *testing.T) {
	user := &entity.User{ID: "alice", Email: "alice@example.com", Name: "Alice", Role: entity.RoleRequester}
	user.SetCoins(1000)

	t.Run("register issues a session", func(t *testing.T) {
		accounts := usecasemocks.NewMockAccountUseCase(t)
		accounts.On("Register", mock.Anything, usecase.RegisterCommand{
			Email: "alice@example.com", Password: "s3cret-pass", Name: "Alice", Role: "requester",
		}).Return(user, nil)
		h := NewAccountHandler(accounts, usecasemocks.NewMockQueryUseCase(t), stubTokens{}, logger.NewNoopLogger())

		router := newRouter("")
		router.POST("/auth/register", h.Register)

		w := doJSON(t, router, http.MethodPost, "/auth/register", dto.RegisterRequest{
			Email: "alice@example.com", Password: "s3cret-pass", Name: "Alice", Role: "requester",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "token-for-alice", resp.Token)
		assert.Equal(t, int64(1000), resp.User.Coins)
	})

	t.Run("register rejects unknown role", func(t *testing.T) {
		h := NewAccountHandler(usecasemocks.NewMockAccountUseCase(t), usecasemocks.NewMockQueryUseCase(t), stubTokens{}, logger.NewNoopLogger())

		router := newRouter("")
		router.POST("/auth/register", h.Register)

		w := doJSON(t, router, http.MethodPost, "/auth/register", dto.RegisterRequest{
			Email: "alice@example.com", Password: "s3cret-pass", Name: "Alice", Role: "both",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		accounts := usecasemocks.NewMockAccountUseCase(t)
		accounts.On("Authenticate", mock.Anything, "alice@example.com", "nope").Return(nil, domainerr.ErrInvalidCredentials)
		h := NewAccountHandler(accounts, usecasemocks.NewMockQueryUseCase(t), stubTokens{}, logger.NewNoopLogger())

		router := newRouter("")
		router.POST("/auth/login", h.Login)

		w := doJSON(t, router, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "alice@example.com", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("availability toggle", func(t *testing.T) {
		available := *user
		available.IsAvailable = true
		accounts := usecasemocks.NewMockAccountUseCase(t)
		accounts.On("SetAvailability", mock.Anything, "alice", true).Return(&available, nil)
		h := NewAccountHandler(accounts, usecasemocks.NewMockQueryUseCase(t), stubTokens{}, logger.NewNoopLogger())

		router := newRouter("alice")
		router.PUT("/me/availability", h.SetAvailability)

		w := doJSON(t, router, http.MethodPut, "/me/availability", map[string]any{"available": true})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsAvailable)
	})
}

func TestNotificationHandler(t *testing.T) {
	t.Run("lists unread", func(t *testing.T) {
		inbox := usecasemocks.NewMockInboxUseCase(t)
		inbox.On("List", mock.Anything, "bob", true, 0).Return([]*entity.Notification{
			{ID: "n-1", UserID: "bob", Event: entity.EventRequestCreated, Title: "New request", CreatedAt: fixedTime},
		}, nil)
		h := NewNotificationHandler(inbox, logger.NewNoopLogger())

		router := newRouter("bob")
		router.GET("/notifications", h.List)

		w := doJSON(t, router, http.MethodGet, "/notifications?unread=true", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []dto.NotificationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "n-1", resp[0].ID)
	})

	t.Run("mark read of a foreign notification", func(t *testing.T) {
		inbox := usecasemocks.NewMockInboxUseCase(t)
		inbox.On("MarkRead", mock.Anything, "bob", "n-9").Return(domainerr.ErrNotificationNotFound)
		h := NewNotificationHandler(inbox, logger.NewNoopLogger())

		router := newRouter("bob")
		router.POST("/notifications/:notificationId/read", h.MarkRead)

		w := doJSON(t, router, http.MethodPost, "/notifications/n-9/read", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
