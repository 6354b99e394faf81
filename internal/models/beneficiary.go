package models

import (
	"time"
)

// Beneficiary caches past transfer recipients per owner. One row per
// (owner, recipient email) pair, bumped on every successful transfer.
type Beneficiary struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	OwnerID        uint    `gorm:"uniqueIndex:idx_owner_recipient;not null" json:"owner_id"`
	RecipientEmail string  `gorm:"uniqueIndex:idx_owner_recipient;not null" json:"recipient_email"`
	RecipientName  string  `gorm:"not null" json:"recipient_name"`
	RecipientID    uint    `gorm:"not null" json:"recipient_id"`
	Nickname       *string `json:"nickname"`
	TransferCount  int     `gorm:"default:1" json:"transfer_count"`
	LastUsedAt     time.Time `json:"last_used_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}
