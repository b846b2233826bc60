package auth

import (
	"errors"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes passwords with bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher. Costs outside bcrypt's range fall back to the default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

var _ core.PasswordHasher = (*BcryptHasher)(nil)

// Hash returns the bcrypt hash of password
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks password against hash
func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errs.ErrInvalidCredentials
	}
	return err
}
