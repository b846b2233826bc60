package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
)

func TestCoinsForMB(t *testing.T) {
	testCases := []struct {
		mb       int64
		expected int64
	}{
		{200, 100},
		{50, 25},
		{1, 1},
		{2, 1},
		{3, 2},
		{199, 100},
		{201, 101},
		{1000, 500},
		{0, 0},
		{-5, 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, CoinsForMB(tc.mb), "CoinsForMB(%d)", tc.mb)
	}
}

func TestCoinsForMBIsDeterministic(t *testing.T) {
	for mb := int64(1); mb <= 5000; mb++ {
		first := CoinsForMB(mb)
		assert.Equal(t, first, CoinsForMB(mb))
		assert.GreaterOrEqual(t, first*MBPerUnit, mb*CoinsPerUnit, "price must cover mb=%d", mb)
	}
}

func TestMBForCoins(t *testing.T) {
	assert.Equal(t, int64(200), MBForCoins(100))
	assert.Equal(t, int64(2000), MBForCoins(1000))
	assert.Equal(t, int64(2), MBForCoins(1))
	assert.Equal(t, int64(0), MBForCoins(-1))
}

func TestCoinsToCurrency(t *testing.T) {
	assert.Equal(t, "10.00", FormatCurrency(100))
	assert.Equal(t, "0.10", FormatCurrency(1))
	assert.Equal(t, "100.00", FormatCurrency(1000))
	assert.True(t, CoinsToCurrency(2000).Equal(decimal.NewFromInt(200)))
}

func TestCurrencyToCoins(t *testing.T) {
	assert.Equal(t, int64(100), CurrencyToCoins(decimal.RequireFromString("10")))
	assert.Equal(t, int64(5), CurrencyToCoins(decimal.RequireFromString("0.59")))
	assert.Equal(t, int64(0), CurrencyToCoins(decimal.RequireFromString("-3")))
}

func TestSettlementAmount(t *testing.T) {
	t.Run("full usage pays the whole escrow", func(t *testing.T) {
		owed, err := SettlementAmount(200, 200, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(100), owed)
	})

	t.Run("partial usage is proportional", func(t *testing.T) {
		owed, err := SettlementAmount(200, 100, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(50), owed)
	})

	t.Run("partial usage rounds up", func(t *testing.T) {
		owed, err := SettlementAmount(200, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), owed)

		owed, err = SettlementAmount(75, 50, 38)
		require.NoError(t, err)
		assert.Equal(t, int64(26), owed)
	})

	t.Run("zero usage owes nothing", func(t *testing.T) {
		owed, err := SettlementAmount(200, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(0), owed)
	})

	t.Run("usage outside the request is rejected", func(t *testing.T) {
		_, err := SettlementAmount(200, 201, 100)
		assert.ErrorIs(t, err, errs.ErrInvalidUsage)

		_, err = SettlementAmount(200, -1, 100)
		assert.ErrorIs(t, err, errs.ErrInvalidUsage)
	})

	t.Run("never exceeds the escrow", func(t *testing.T) {
		for mb := int64(50); mb <= 400; mb += 7 {
			offered := CoinsForMB(mb)
			for used := int64(0); used <= mb; used++ {
				owed, err := SettlementAmount(mb, used, offered)
				require.NoError(t, err)
				assert.LessOrEqual(t, owed, offered)
				assert.GreaterOrEqual(t, owed, int64(0))
			}
		}
	})
}

func TestCoinPackages(t *testing.T) {
	packages := CoinPackages()
	require.Len(t, packages, 4)

	expected := map[int64]string{100: "10.00", 500: "50.00", 1000: "100.00", 2000: "200.00"}
	for _, p := range packages {
		assert.Equal(t, expected[p.Coins], p.Price.StringFixed(2))
	}
}
