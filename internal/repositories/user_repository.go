package repositories

import (
	"errors"
	"time"

	"paygo/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository handles user persistence. Registration creates the user and
// their wallet together so no account ever exists without one.
type UserRepository interface {
	CreateWithWallet(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	IncrementTokenVersion(userID uint) error

	// PIN storage
	SavePinHash(userID uint, hash string) error
	UpdatePinAttempts(userID uint, attempts int, lockedUntil *time.Time) error

	// Admin operations
	List(limit, offset int) ([]models.User, int64, error)
	SetSuspended(userID uint, suspended bool) error
	Delete(userID uint) error
}
