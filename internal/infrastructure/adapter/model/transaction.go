package model

import (
	"time"
)

// Transaction represents one row of the append-only coin ledger
type Transaction struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserID      string    `gorm:"not null;size:36;index:idx_transactions_user_created,priority:1"`
	Type        string    `gorm:"not null;size:20"`
	Coins       int64     `gorm:"not null;check:chk_transactions_coins_positive,coins > 0"`
	Description string    `gorm:"size:255"`
	RequestID   string    `gorm:"size:36;index"`
	CreatedAt   time.Time `gorm:"not null;index:idx_transactions_user_created,priority:2"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
