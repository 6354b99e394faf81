// Package pin guards wallet-mutating operations behind a 4-digit PIN that is
// distinct from the account password. Only the bcrypt hash is ever stored;
// format validation always runs before anything touches storage.
package pin

import (
	"regexp"
	"time"

	"paygo/internal/models"
	"paygo/internal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxAttempts  = 5
	lockDuration = 15 * time.Minute
)

var pinFormat = regexp.MustCompile(`^\d{4}$`)

// Status describes whether a user has a PIN configured.
type Status struct {
	HasPin   bool       `json:"has_pin"`
	PinSetAt *time.Time `json:"pin_set_at,omitempty"`
}

type Service interface {
	Status(userID uint) (*Status, error)
	// Set stores the initial PIN; requires password re-authentication and
	// fails if a PIN is already configured.
	Set(userID uint, pin, password string) error
	// Change overwrites the PIN, authorized by the current PIN or, as a
	// forgotten-PIN fallback, the account password.
	Change(userID uint, newPin, currentPin, password string) error
	// Verify checks a candidate PIN, counting failed attempts and locking
	// after too many.
	Verify(userID uint, candidate string) error
}

type service struct {
	users repositories.UserRepository
}

func NewService(users repositories.UserRepository) Service {
	return &service{users: users}
}

func (s *service) Status(userID uint) (*Status, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return &Status{HasPin: user.HasPin(), PinSetAt: user.PinSetAt}, nil
}

func (s *service) Set(userID uint, pin, password string) error {
	if !pinFormat.MatchString(pin) {
		return ErrInvalidPinFormat
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user.HasPin() {
		return ErrPinAlreadySet
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return ErrInvalidPassword
	}

	return s.savePin(user, pin)
}

func (s *service) Change(userID uint, newPin, currentPin, password string) error {
	if !pinFormat.MatchString(newPin) {
		return ErrInvalidPinFormat
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.HasPin() {
		return ErrPinNotSet
	}

	switch {
	case currentPin != "":
		if err := s.checkPin(user, currentPin); err != nil {
			return err
		}
	case password != "":
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return ErrInvalidPassword
		}
	default:
		return ErrNoCredential
	}

	return s.savePin(user, newPin)
}

func (s *service) Verify(userID uint, candidate string) error {
	if !pinFormat.MatchString(candidate) {
		return ErrInvalidPinFormat
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if !user.HasPin() {
		return ErrPinNotSet
	}
	return s.checkPin(user, candidate)
}

func (s *service) savePin(user *models.User, pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.SavePinHash(user.ID, string(hash))
}

// checkPin compares the candidate against the stored hash, tracking failed
// attempts. A 4-digit space is small enough to brute-force, so five failures
// lock verification for a window.
func (s *service) checkPin(user *models.User, candidate string) error {
	if user.PinLockedUntil != nil && user.PinLockedUntil.After(time.Now()) {
		return ErrPinLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(*user.WalletPin), []byte(candidate)) != nil {
		attempts := user.PinAttempts + 1
		var lockedUntil *time.Time
		if attempts >= maxAttempts {
			until := time.Now().Add(lockDuration)
			lockedUntil = &until
			attempts = 0
			logrus.WithField("user_id", user.ID).Warn("wallet PIN locked after repeated failures")
		}
		if err := s.users.UpdatePinAttempts(user.ID, attempts, lockedUntil); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to record pin attempt")
		}
		if lockedUntil != nil {
			return ErrPinLocked
		}
		return ErrIncorrectPin
	}

	if user.PinAttempts > 0 || user.PinLockedUntil != nil {
		if err := s.users.UpdatePinAttempts(user.ID, 0, nil); err != nil {
			logrus.WithError(err).WithField("user_id", user.ID).Error("failed to reset pin attempts")
		}
	}
	return nil
}
