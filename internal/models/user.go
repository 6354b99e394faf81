package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName      string     `gorm:"not null" json:"first_name"`
	LastName       string     `gorm:"not null" json:"last_name"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"` // stored lowercase
	Password       string     `gorm:"not null" json:"-"`
	WalletPin      *string    `gorm:"column:wallet_pin" json:"-"` // bcrypt hash, nil until set
	PinSetAt       *time.Time `json:"pin_set_at,omitempty"`
	PinAttempts    int        `gorm:"default:0" json:"-"`
	PinLockedUntil *time.Time `json:"-"`
	IsVerified     bool       `gorm:"default:false" json:"is_verified"`
	IsSuspended    bool       `gorm:"default:false" json:"is_suspended"`
	Role           string     `gorm:"default:'user'" json:"role"`
	TokenVersion   int        `gorm:"default:1" json:"-"`
}

// FullName returns the display name denormalized onto transaction records.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasPin reports whether a wallet PIN has been configured.
func (u *User) HasPin() bool {
	return u.WalletPin != nil && *u.WalletPin != ""
}
