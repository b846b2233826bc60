package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

// TransactionType classifies a ledger entry
type TransactionType string

// Transaction types
const (
	TransactionBonus    TransactionType = "bonus"
	TransactionPurchase TransactionType = "purchase"
	TransactionSpent    TransactionType = "spent"
	TransactionReceived TransactionType = "received"
	TransactionRefund   TransactionType = "refund"
)

// IsValid checks the type against the ledger's fixed set
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionBonus, TransactionPurchase, TransactionSpent, TransactionReceived, TransactionRefund:
		return true
	}
	return false
}

// IsDebit reports whether entries of this type reduce the balance
func (t TransactionType) IsDebit() bool {
	return t == TransactionSpent
}

// Transaction is an immutable ledger entry. Coins is the magnitude; the sign
// comes from the type.
type Transaction struct {
	ID          string          `validate:"required"`
	UserID      string          `validate:"required"`
	Type        TransactionType `validate:"required"`
	Coins       int64           `validate:"gt=0"`
	Description string          `validate:"max=255"`
	RequestID   string
	CreatedAt   time.Time
}

// NewTransaction creates a new ledger entry with validation
func NewTransaction(
	id string,
	userID string,
	txType TransactionType,
	coins int64,
	description string,
	requestID string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}
	if !txType.IsValid() {
		return nil, errs.ErrInvalidTransactionType
	}
	if coins <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	tx := &Transaction{
		ID:          id,
		UserID:      userID,
		Type:        txType,
		Coins:       coins,
		Description: description,
		RequestID:   requestID,
		CreatedAt:   timeProvider.Now(),
	}
	if err := validateSchema("transaction", tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// SignedCoins returns the entry's effect on the balance
func (t *Transaction) SignedCoins() int64 {
	if t.Type.IsDebit() {
		return -t.Coins
	}
	return t.Coins
}

// SignedSum folds entries into the balance they imply
func SignedSum(transactions []*Transaction) int64 {
	var sum int64
	for _, t := range transactions {
		sum += t.SignedCoins()
	}
	return sum
}
