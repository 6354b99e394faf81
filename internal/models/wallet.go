package models

import (
	"time"
)

// Wallet holds a user's stored balance in major currency units (naira).
// Exactly one wallet exists per user; it is created together with the
// account so funding never has to deal with a missing wallet.
type Wallet struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	UserID    uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   float64 `gorm:"not null;default:0" json:"balance"`
	Currency  string  `gorm:"not null;default:'NGN'" json:"currency"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
