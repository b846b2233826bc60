package model

import (
	"time"
)

// Request represents the database model for internet sharing requests.
// Partial unique indexes on requester_id are created by the migration.
type Request struct {
	ID           string `gorm:"primaryKey;size:36"`
	RequesterID  string `gorm:"not null;size:36;index"`
	ProviderID   string `gorm:"not null;size:36;index:idx_requests_provider_status,priority:1"`
	MB           int64  `gorm:"column:mb;not null"`
	CoinsOffered int64  `gorm:"not null"`
	Status       string `gorm:"not null;size:20;index:idx_requests_provider_status,priority:2"`
	MBUsed       *int64 `gorm:"column:mb_used"`
	CoinsSettled *int64
	IgnoreReason string    `gorm:"size:20"`
	ClientRef    string    `gorm:"size:64"`
	CreatedAt    time.Time `gorm:"not null;index"`
	AcceptedAt   *time.Time
	IgnoredAt    *time.Time
	CompletedAt  *time.Time
}

// TableName specifies the table name for Request
func (Request) TableName() string {
	return "requests"
}
