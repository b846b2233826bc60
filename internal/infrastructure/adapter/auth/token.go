package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed, expired or forged tokens
var ErrInvalidToken = errors.New("invalid or expired session token")

// Claims are the session token contents
type Claims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens
type TokenIssuer struct {
	secret       []byte
	issuer       string
	ttl          time.Duration
	timeProvider core.TimeProvider
}

// NewTokenIssuer creates a token issuer
func NewTokenIssuer(secret, issuer string, ttl time.Duration, timeProvider core.TimeProvider) *TokenIssuer {
	return &TokenIssuer{
		secret:       []byte(secret),
		issuer:       issuer,
		ttl:          ttl,
		timeProvider: timeProvider,
	}
}

// Issue returns a signed token for user and its expiry
func (i *TokenIssuer) Issue(user *entity.User) (string, time.Time, error) {
	now := i.timeProvider.Now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies tokenString and returns its claims
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.timeProvider.Now),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
