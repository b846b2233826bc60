package middleware

import (
	"net/http"
	"strings"

	domainerr "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key of the authenticated user id
const UserIDKey = "userId"

// TokenParser verifies session tokens
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Auth rejects requests without a valid bearer token. Browsers cannot set
// headers on websocket upgrades, so the access_token query parameter is
// accepted as well.
func Auth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("access_token")
		}
		if token == "" {
			abortUnauthorized(c, "Missing session token")
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired session token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.CodeInvalidCredentials,
		Message: message,
	})
}
