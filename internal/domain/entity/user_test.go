package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/hotfinet-ledger/mocks/port/core"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	t.Run("Valid user creation", func(t *testing.T) {
		user, err := NewUser("u-1", " Asha@Example.com ", "Asha", RoleProvider, "hash", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.Equal(t, int64(0), user.Coins())
		assert.False(t, user.IsAvailable)
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("Empty ID should return error", func(t *testing.T) {
		user, err := NewUser("", "a@b.co", "A", RoleRequester, "hash", mockTime)

		assert.Equal(t, errs.ErrInvalidUserID, err)
		assert.Nil(t, user)
	})

	t.Run("Schema violations", func(t *testing.T) {
		testCases := map[string]struct {
			email string
			name  string
			role  Role
		}{
			"bad email":    {"not-an-email", "A", RoleProvider},
			"missing name": {"a@b.co", "", RoleProvider},
			"unknown role": {"a@b.co", "A", Role("admin")},
		}

		for name, tc := range testCases {
			t.Run(name, func(t *testing.T) {
				user, err := NewUser("u-1", tc.email, tc.name, tc.role, "hash", mockTime)
				assert.ErrorIs(t, err, errs.ErrInvalidRequest)
				assert.Nil(t, user)
			})
		}
	})
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("Provider")
	require.NoError(t, err)
	assert.Equal(t, RoleProvider, role)

	role, err = ParseRole("requester")
	require.NoError(t, err)
	assert.Equal(t, RoleRequester, role)

	_, err = ParseRole("admin")
	assert.ErrorIs(t, err, errs.ErrInvalidRole)
}

func TestUserWallet(t *testing.T) {
	user := &User{ID: "u-1"}
	user.SetCoins(1000)

	wallet := user.Wallet()
	assert.Equal(t, int64(1000), wallet.Coins)
	assert.Equal(t, "100.00", wallet.CurrencyValue)
	assert.Equal(t, int64(2000), wallet.MBEquivalent)

	assert.True(t, user.CanAfford(1000))
	assert.False(t, user.CanAfford(1001))
	assert.False(t, user.CanAfford(-1))
}

func TestUserRename(t *testing.T) {
	later := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(later).Once()

	user := &User{ID: "u-1", Name: "Old"}
	require.NoError(t, user.Rename("  New Name ", mockTime))
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, later, user.UpdatedAt)

	assert.ErrorIs(t, user.Rename("   ", mockTime), errs.ErrInvalidRequest)
}

func TestProviderSummaryHidesBalance(t *testing.T) {
	user := &User{ID: "p-1", Name: "Ravi", Stats: UsageStats{TotalMBShared: 300, TotalSessionsAsProvider: 2}}
	user.SetCoins(5000)

	summary := user.ProviderSummary()
	assert.Equal(t, ProviderSummary{UserID: "p-1", Name: "Ravi", TotalMBShared: 300, TotalSessionsAsProvider: 2}, summary)
}
