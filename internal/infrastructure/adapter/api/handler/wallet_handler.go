package handler

import (
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler handles balance, purchase and history requests
type WalletHandler struct {
	ledger  usecase.LedgerUseCase
	queries usecase.QueryUseCase
	minMB   int64
	logger  coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(
	ledger usecase.LedgerUseCase,
	queries usecase.QueryUseCase,
	minMB int64,
	logger coreport.Logger,
) *WalletHandler {
	return &WalletHandler{
		ledger:  ledger,
		queries: queries,
		minMB:   minMB,
		logger:  logger,
	}
}

// Wallet handles GET /wallet
func (h *WalletHandler) Wallet(c *gin.Context) {
	wallet, err := h.ledger.Wallet(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.logger, "wallet", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWalletResponse(wallet))
}

// Packages handles GET /wallet/packages
func (h *WalletHandler) Packages(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewPackageResponses(h.ledger.Packages()))
}

// Purchase handles POST /wallet/purchase
func (h *WalletHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidAmount,
			Message: "Invalid price format",
		})
		return
	}

	tx, err := h.ledger.Purchase(c.Request.Context(), middleware.UserID(c), req.Coins, price)
	if err != nil {
		writeError(c, h.logger, "purchase", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTransactionResponse(tx))
}

// Transactions handles GET /wallet/transactions?limit=N
func (h *WalletHandler) Transactions(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	txs, err := h.queries.TransactionHistory(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		writeError(c, h.logger, "transaction history", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponses(txs))
}

// Quote handles GET /quote?mb=N
func (h *WalletHandler) Quote(c *gin.Context) {
	mb, err := strconv.ParseInt(c.Query("mb"), 10, 64)
	if err != nil || mb <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidRequest,
			Message: "Query parameter mb must be a positive integer",
		})
		return
	}

	coins := entity.CoinsForMB(mb)
	c.JSON(http.StatusOK, dto.QuoteResponse{
		MB:            mb,
		Coins:         coins,
		CurrencyValue: entity.FormatCurrency(coins),
		MinMB:         h.minMB,
	})
}

// queryInt reads an optional integer query parameter. It writes the error
// response itself and reports false when the value is malformed.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidRequest,
			Message: "Query parameter " + name + " must be a non-negative integer",
		})
		return 0, false
	}
	return v, true
}
