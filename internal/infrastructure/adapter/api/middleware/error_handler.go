package middleware

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers from panics and returns appropriate error responses
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":     err,
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"clientIp":  c.ClientIP(),
					"requestId": c.GetString(RequestIDKey),
					"userAgent": c.Request.UserAgent(),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    domainerr.ErrorCode(domainerr.ErrInternalServer),
					Message: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
