package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// RequestHandler handles the internet-sharing request lifecycle
type RequestHandler struct {
	requests usecase.RequestUseCase
	queries  usecase.QueryUseCase
	logger   coreport.Logger
}

// NewRequestHandler creates a new request handler instance
func NewRequestHandler(
	requests usecase.RequestUseCase,
	queries usecase.QueryUseCase,
	logger coreport.Logger,
) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		queries:  queries,
		logger:   logger,
	}
}

// Create handles POST /requests
func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	created, err := h.requests.Create(c.Request.Context(), usecase.CreateRequestCommand{
		RequesterID:  middleware.UserID(c),
		ProviderID:   req.ProviderID,
		MB:           req.MB,
		CoinsOffered: req.CoinsOffered,
		ClientRef:    req.ClientRef,
	})
	if err != nil {
		writeError(c, h.logger, "create request", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRequestResponse(created))
}

// Get handles GET /requests/:requestId
func (h *RequestHandler) Get(c *gin.Context) {
	req, err := h.queries.RequestByID(c.Request.Context(), middleware.UserID(c), c.Param("requestId"))
	if err != nil {
		writeError(c, h.logger, "get request", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRequestResponse(req))
}

// Active handles GET /requests/active. No active request is a 204.
func (h *RequestHandler) Active(c *gin.Context) {
	req, err := h.queries.ActiveRequestFor(c.Request.Context(), middleware.UserID(c))
	if errors.Is(err, domainerr.ErrRequestNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(c, h.logger, "active request", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRequestResponse(req))
}

// Pending handles GET /requests/pending, the provider's inbox
func (h *RequestHandler) Pending(c *gin.Context) {
	reqs, err := h.queries.PendingRequestsFor(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.logger, "pending requests", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRequestResponses(reqs))
}

// Accept handles POST /requests/:requestId/accept
func (h *RequestHandler) Accept(c *gin.Context) {
	req, err := h.requests.Accept(c.Request.Context(), middleware.UserID(c), c.Param("requestId"))
	if err != nil {
		writeError(c, h.logger, "accept request", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRequestResponse(req))
}

// Ignore handles POST /requests/:requestId/ignore
func (h *RequestHandler) Ignore(c *gin.Context) {
	req, err := h.requests.Ignore(c.Request.Context(), middleware.UserID(c), c.Param("requestId"))
	if err != nil {
		writeError(c, h.logger, "ignore request", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRequestResponse(req))
}

// Complete handles POST /requests/:requestId/complete
func (h *RequestHandler) Complete(c *gin.Context) {
	var req dto.CompleteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.requests.Complete(c.Request.Context(), middleware.UserID(c), c.Param("requestId"), *req.MBUsed)
	if err != nil {
		writeError(c, h.logger, "complete request", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettlementResponse(result))
}

// Providers handles GET /providers
func (h *RequestHandler) Providers(c *gin.Context) {
	providers, err := h.queries.AvailableProviders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.logger, "available providers", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProviderResponses(providers))
}
