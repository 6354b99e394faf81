package models

import (
	"time"
)

// Notification types
const (
	NotificationTypeCredit       = "credit"
	NotificationTypeDebit        = "debit"
	NotificationTypeWalletFunded = "wallet_funded"
	NotificationTypeSecurity     = "security"
)

// Notification is an in-app message created by the fan-out worker after a
// funding or transfer commits. Best-effort only, never part of the money path.
type Notification struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	UserID        uint       `gorm:"index:idx_user_read;not null" json:"user_id"`
	Type          string     `gorm:"not null" json:"type"`
	Title         string     `gorm:"not null" json:"title"`
	Message       string     `gorm:"not null" json:"message"`
	Amount        float64    `json:"amount,omitempty"`
	TransactionID *uint      `json:"transaction_id,omitempty"`
	Read          bool       `gorm:"index:idx_user_read;default:false" json:"read"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"-"`
}
