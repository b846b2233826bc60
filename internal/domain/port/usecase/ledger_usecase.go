package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// LedgerEntry describes one balance change and the journal line that records it
type LedgerEntry struct {
	UserID      string
	Coins       int64
	Type        entity.TransactionType
	Description string
	RequestID   string
}

// LedgerUseCase is the only writer of balances. Every call changes exactly
// one balance and appends exactly one transaction in the same atomic unit.
type LedgerUseCase interface {
	Credit(ctx context.Context, entry LedgerEntry) (*entity.Transaction, error)
	Debit(ctx context.Context, entry LedgerEntry) (*entity.Transaction, error)
	// Purchase credits a coin package after checking the quoted price
	Purchase(ctx context.Context, userID string, coins int64, price decimal.Decimal) (*entity.Transaction, error)
	Packages() []entity.CoinPackage
	Wallet(ctx context.Context, userID string) (entity.WalletSummary, error)
}
