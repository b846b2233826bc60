package model

import (
	"time"
)

// User represents the database model for accounts
type User struct {
	ID                       string    `gorm:"primaryKey;size:36"`
	Email                    string    `gorm:"uniqueIndex;not null;size:254"`
	Name                     string    `gorm:"not null;size:100"`
	Role                     string    `gorm:"not null;size:20"`
	PasswordHash             string    `gorm:"not null;size:100"`
	Coins                    int64     `gorm:"not null;default:0;check:chk_users_coins_non_negative,coins >= 0"`
	IsAvailable              bool      `gorm:"not null;default:false;index"`
	TotalMBShared            int64     `gorm:"not null;default:0"`
	TotalMBConsumed          int64     `gorm:"not null;default:0"`
	TotalSessionsAsProvider  int64     `gorm:"not null;default:0"`
	TotalSessionsAsRequester int64     `gorm:"not null;default:0"`
	CreatedAt                time.Time `gorm:"not null"`
	UpdatedAt                time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
