package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/hotfinet-ledger/mocks/port/core"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	t.Run("Valid transaction", func(t *testing.T) {
		tx, err := NewTransaction("t-1", "u-1", TransactionSpent, 100, "escrow", "r-1", mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(100), tx.Coins)
		assert.Equal(t, int64(-100), tx.SignedCoins())
		assert.Equal(t, "r-1", tx.RequestID)
		assert.Equal(t, fixedTime, tx.CreatedAt)
	})

	testCases := []struct {
		name     string
		userID   string
		txType   TransactionType
		coins    int64
		expected error
	}{
		{"empty user", "", TransactionBonus, 10, errs.ErrInvalidUserID},
		{"unknown type", "u-1", TransactionType("gift"), 10, errs.ErrInvalidTransactionType},
		{"zero coins", "u-1", TransactionRefund, 0, errs.ErrInvalidAmount},
		{"negative coins", "u-1", TransactionReceived, -5, errs.ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := NewTransaction("t-1", tc.userID, tc.txType, tc.coins, "", "", mockTime)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, tx)
		})
	}

	t.Run("missing id fails schema", func(t *testing.T) {
		_, err := NewTransaction("", "u-1", TransactionBonus, 1000, "", "", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestSignedSum(t *testing.T) {
	txs := []*Transaction{
		{Type: TransactionBonus, Coins: 1000},
		{Type: TransactionSpent, Coins: 100},
		{Type: TransactionRefund, Coins: 50},
		{Type: TransactionPurchase, Coins: 500},
		{Type: TransactionReceived, Coins: 25},
	}

	assert.Equal(t, int64(1475), SignedSum(txs))
	assert.Equal(t, int64(0), SignedSum(nil))
}
