package auth

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	timeprovider "github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/time"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong horse"), errs.ErrInvalidCredentials)
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

func TestTokenIssuer(t *testing.T) {
	clock := timeprovider.NewManualTimeProvider(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer("test-secret-test-secret-test-secret", "hotfinet", time.Hour, clock)
	user := &entity.User{ID: "u-1", Email: "asha@example.com"}

	token, expiresAt, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(time.Hour), expiresAt)

	t.Run("valid token", func(t *testing.T) {
		claims, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "asha@example.com", claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenIssuer("another-secret-another-secret-xx", "hotfinet", time.Hour, clock)
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenIssuer("test-secret-test-secret-test-secret", "someone-else", time.Hour, clock)
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u-1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = issuer.Parse(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		clock.Advance(2 * time.Hour)
		_, err := issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
