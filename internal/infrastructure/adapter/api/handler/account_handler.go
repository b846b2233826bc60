package handler

import (
	"net/http"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(user *entity.User) (string, time.Time, error)
}

// AccountHandler handles sign-up, sign-in and profile requests
type AccountHandler struct {
	accounts usecase.AccountUseCase
	queries  usecase.QueryUseCase
	tokens   TokenIssuer
	logger   coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(
	accounts usecase.AccountUseCase,
	queries usecase.QueryUseCase,
	tokens TokenIssuer,
	logger coreport.Logger,
) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		queries:  queries,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), usecase.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		writeError(c, h.logger, "register", err)
		return
	}

	h.respondWithSession(c, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.logger, "login", err)
		return
	}

	h.respondWithSession(c, http.StatusOK, user)
}

func (h *AccountHandler) respondWithSession(c *gin.Context, status int, user *entity.User) {
	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		writeError(c, h.logger, "issue token", err)
		return
	}
	c.JSON(status, dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(user),
	})
}

// Me handles GET /me
func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.queries.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, h.logger, "profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// SetAvailability handles PUT /me/availability
func (h *AccountHandler) SetAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.accounts.SetAvailability(c.Request.Context(), middleware.UserID(c), *req.Available)
	if err != nil {
		writeError(c, h.logger, "set availability", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateProfile handles PATCH /me
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		writeError(c, h.logger, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
