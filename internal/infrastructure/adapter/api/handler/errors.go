package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// StatusFor maps a domain error code to its HTTP status
func StatusFor(code int) int {
	switch {
	case code == domainerr.CodeInsufficientFunds:
		return http.StatusPaymentRequired
	case code == domainerr.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case code == domainerr.CodeInvalidUsage:
		return http.StatusUnprocessableEntity
	case code == domainerr.CodeNotRequestParty:
		return http.StatusForbidden
	case code == domainerr.CodeConstraintViolation, code == domainerr.CodeProviderUnavailable:
		return http.StatusConflict
	case code >= 4040 && code < 4050:
		return http.StatusNotFound
	case code >= 4090 && code < 4100:
		return http.StatusConflict
	case code >= 4000 && code < 5000:
		return http.StatusBadRequest
	case code == domainerr.CodeCollaboratorUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an ErrorResponse. Client errors carry the domain
// message; server errors are logged and hidden.
func writeError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	code := domainerr.ErrorCode(err)
	status := StatusFor(code)

	resp := dto.ErrorResponse{
		Code:    code,
		Message: err.Error(),
		Details: detailsOf(err),
	}

	fields := map[string]any{
		"operation": operation,
		"code":      code,
		"error":     err.Error(),
		"userId":    c.GetString("userId"),
	}
	switch status {
	case http.StatusPaymentRequired:
		logger.Debug("Request rejected", fields)
		resp.Message = domainerr.ErrInsufficientFunds.Error()
	case http.StatusInternalServerError:
		logger.Error("Request failed", fields)
		resp.Message = "Internal server error"
		resp.Details = nil
	case http.StatusServiceUnavailable:
		logger.Warn("Request failed on unavailable collaborator", fields)
		resp.Message = "Service temporarily unavailable, retry shortly"
		resp.Retryable = true
		resp.Details = nil
	default:
		logger.Debug("Request rejected", fields)
	}

	c.AbortWithStatusJSON(status, resp)
}

// writeBindError reports a malformed body
func writeBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.CodeInvalidRequest,
		Message: "Invalid request format: " + err.Error(),
	})
}

func detailsOf(err error) map[string]any {
	var typed interface{ LogFields() map[string]any }
	if errors.As(err, &typed) {
		return typed.LogFields()
	}
	return nil
}
