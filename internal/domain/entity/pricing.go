package entity

import (
	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
)

// Tariff: 100 coins buy 200 MB, one coin is worth 0.10 of the local currency.
const (
	CoinsPerUnit int64 = 100
	MBPerUnit    int64 = 200
	MinRequestMB int64 = 50
	MaxRequestMB int64 = 1_000_000
	WelcomeBonus int64 = 1000
)

var coinValue = decimal.New(10, -2)

// CoinsForMB returns the price of mb megabytes, rounded up to a whole coin.
func CoinsForMB(mb int64) int64 {
	if mb <= 0 {
		return 0
	}
	return (mb*CoinsPerUnit + MBPerUnit - 1) / MBPerUnit
}

// MBForCoins returns how many whole megabytes coins can buy.
func MBForCoins(coins int64) int64 {
	if coins <= 0 {
		return 0
	}
	return coins * MBPerUnit / CoinsPerUnit
}

// CoinsToCurrency converts coins to their display value rounded to 2 places.
func CoinsToCurrency(coins int64) decimal.Decimal {
	return decimal.NewFromInt(coins).Mul(coinValue).Round(2)
}

// FormatCurrency renders a coin amount as a fixed two decimal string.
func FormatCurrency(coins int64) string {
	return CoinsToCurrency(coins).StringFixed(2)
}

// CurrencyToCoins returns the whole coins an amount of currency buys.
func CurrencyToCoins(amount decimal.Decimal) int64 {
	if amount.IsNegative() {
		return 0
	}
	return amount.Div(coinValue).Floor().IntPart()
}

// SettlementAmount returns the coins owed to the provider for mbUsed out of
// mb requested, given the escrowed coinsOffered. Full usage pays the full
// escrow; partial usage is proportional and rounded up.
func SettlementAmount(mb, mbUsed, coinsOffered int64) (int64, error) {
	if mbUsed < 0 || mbUsed > mb {
		return 0, errs.ErrInvalidUsage
	}
	if mbUsed == mb {
		return coinsOffered, nil
	}
	return (mbUsed*coinsOffered + mb - 1) / mb, nil
}

// CoinPackage is a purchasable bundle of coins.
type CoinPackage struct {
	Coins int64
	Price decimal.Decimal
	Label string
}

// CoinPackages lists the bundles offered in the wallet.
func CoinPackages() []CoinPackage {
	sizes := []struct {
		coins int64
		label string
	}{
		{100, "Starter"},
		{500, "Popular"},
		{1000, "Value"},
		{2000, "Power"},
	}

	packages := make([]CoinPackage, 0, len(sizes))
	for _, s := range sizes {
		packages = append(packages, CoinPackage{
			Coins: s.coins,
			Price: CoinsToCurrency(s.coins),
			Label: s.label,
		})
	}
	return packages
}
