package model

import (
	"time"
)

// Notification represents an in-app inbox entry
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"not null;size:36;index:idx_notifications_user_created,priority:1"`
	Event     string    `gorm:"not null;size:40"`
	Title     string    `gorm:"not null;size:120"`
	Body      string    `gorm:"size:500"`
	RequestID string    `gorm:"size:36"`
	Read      bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index:idx_notifications_user_created,priority:2"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
