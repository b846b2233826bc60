package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

// Role is the role an account picked at registration. It is informational:
// every account may both provide and request.
type Role string

const (
	RoleProvider  Role = "provider"
	RoleRequester Role = "requester"
)

// ParseRole accepts a role name in any case.
func ParseRole(role string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(role))) {
	case RoleProvider:
		return RoleProvider, nil
	case RoleRequester:
		return RoleRequester, nil
	default:
		return "", errs.ErrInvalidRole
	}
}

// UsageStats are lifetime counters, they never decrease.
type UsageStats struct {
	TotalMBShared            int64
	TotalMBConsumed          int64
	TotalSessionsAsProvider  int64
	TotalSessionsAsRequester int64
}

// User is an account holding a coin balance
type User struct {
	ID           string `validate:"required"`
	Email        string `validate:"required,email,max=254"`
	Name         string `validate:"required,max=100"`
	Role         Role   `validate:"oneof=provider requester"`
	PasswordHash string `validate:"required"`
	IsAvailable  bool
	Stats        UsageStats
	coins        int64 // only the ledger changes it
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates an account with an empty balance. The welcome bonus is
// credited through the ledger so that it is backed by a transaction.
func NewUser(id, email, name string, role Role, passwordHash string, timeProvider coreport.TimeProvider) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	user := &User{
		ID:           id,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         strings.TrimSpace(name),
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := validateSchema("user", user); err != nil {
		return nil, err
	}
	return user, nil
}

// Coins returns the current balance
func (u *User) Coins() int64 {
	return u.coins
}

// SetCoins loads a persisted balance (for repositories)
func (u *User) SetCoins(coins int64) {
	u.coins = coins
}

// CanAfford reports whether a debit of coins would keep the balance non-negative
func (u *User) CanAfford(coins int64) bool {
	return coins >= 0 && u.coins >= coins
}

// Rename changes the display name
func (u *User) Rename(name string, timeProvider coreport.TimeProvider) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return &errs.ValidationError{Entity: "user", Fields: []string{"Name:required"}}
	}
	u.Name = name
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// Wallet summarizes the balance for display
func (u *User) Wallet() WalletSummary {
	return WalletSummary{
		UserID:        u.ID,
		Coins:         u.coins,
		CurrencyValue: FormatCurrency(u.coins),
		MBEquivalent:  MBForCoins(u.coins),
	}
}

// ProviderSummary is the public view of a provider for discovery
func (u *User) ProviderSummary() ProviderSummary {
	return ProviderSummary{
		UserID:                  u.ID,
		Name:                    u.Name,
		TotalMBShared:           u.Stats.TotalMBShared,
		TotalSessionsAsProvider: u.Stats.TotalSessionsAsProvider,
	}
}
