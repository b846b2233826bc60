package middleware

import (
	"time"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key of the request id
const RequestIDKey = "requestId"

// RequestID reuses the caller's X-Request-ID or assigns one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logger middleware logs incoming requests and their responses
func Logger(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		statusCode := c.Writer.Status()
		fields := map[string]any{
			"method":     method,
			"path":       path,
			"route":      c.FullPath(),
			"status":     statusCode,
			"latencyMs":  time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"requestId":  c.GetString(RequestIDKey),
			"userAgent":  c.Request.UserAgent(),
			"statusText": statusText(statusCode),
		}
		if userID := c.GetString(UserIDKey); userID != "" {
			fields["userId"] = userID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.Errors()
		}

		switch {
		case statusCode >= 500:
			logger.Error("Request processed", fields)
		case statusCode >= 400:
			logger.Warn("Request processed", fields)
		default:
			logger.Info("Request processed", fields)
		}
	}
}

// statusText returns the text for the HTTP status code
func statusText(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "Informational"
	case code >= 200 && code < 300:
		return "Success"
	case code >= 300 && code < 400:
		return "Redirect"
	case code >= 400 && code < 500:
		return "Client Error"
	default:
		return "Server Error"
	}
}
