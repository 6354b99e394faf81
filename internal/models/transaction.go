package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// Transaction statuses
const (
	TransactionStatusPending    = "pending"
	TransactionStatusSuccessful = "successful"
	TransactionStatusFailed     = "failed"
)

// Transaction is an immutable ledger entry. Rows are never rewritten after
// creation; the only permitted change is the pending -> successful status
// flip performed by the funding settlement.
type Transaction struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	UserID      uint    `gorm:"index;not null" json:"user_id"`
	Type        string  `gorm:"not null" json:"type"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Status      string  `gorm:"not null;default:'successful'" json:"status"`
	Reference   *string `gorm:"uniqueIndex" json:"reference,omitempty"` // gateway reference, global uniqueness
	Description string  `json:"description"`

	// Denormalized counterparty info for transfer entries.
	CounterpartyID    *uint  `json:"counterparty_id,omitempty"`
	CounterpartyName  string `json:"counterparty_name,omitempty"`
	CounterpartyEmail string `json:"counterparty_email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
