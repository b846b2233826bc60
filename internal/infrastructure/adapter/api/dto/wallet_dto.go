package dto

import (
	"time"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
)

// WalletResponse is the balance view
type WalletResponse struct {
	UserID        string `json:"userId"`
	Coins         int64  `json:"coins"`
	CurrencyValue string `json:"currencyValue"`
	MBEquivalent  int64  `json:"mbEquivalent"`
}

// PurchaseRequest buys coins at the quoted price. Price is a decimal string
// such as "10.00".
type PurchaseRequest struct {
	Coins int64  `json:"coins" binding:"required,gt=0"`
	Price string `json:"price" binding:"required"`
}

// PackageResponse is one purchasable bundle
type PackageResponse struct {
	Coins int64  `json:"coins"`
	Price string `json:"price"`
	Label string `json:"label"`
}

// TransactionResponse is one ledger line
type TransactionResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Coins       int64     `json:"coins"`
	SignedCoins int64     `json:"signedCoins"`
	Description string    `json:"description"`
	RequestID   string    `json:"requestId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewWalletResponse maps a wallet summary
func NewWalletResponse(w entity.WalletSummary) WalletResponse {
	return WalletResponse{
		UserID:        w.UserID,
		Coins:         w.Coins,
		CurrencyValue: w.CurrencyValue,
		MBEquivalent:  w.MBEquivalent,
	}
}

// NewPackageResponses maps the package catalog
func NewPackageResponses(packages []entity.CoinPackage) []PackageResponse {
	out := make([]PackageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, PackageResponse{Coins: p.Coins, Price: p.Price.StringFixed(2), Label: p.Label})
	}
	return out
}

// NewTransactionResponses maps ledger lines
func NewTransactionResponses(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}

// NewTransactionResponse maps one ledger line
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Coins:       tx.Coins,
		SignedCoins: tx.SignedCoins(),
		Description: tx.Description,
		RequestID:   tx.RequestID,
		CreatedAt:   tx.CreatedAt,
	}
}
