package pin

import "errors"

var (
	ErrInvalidPinFormat = errors.New("PIN must be exactly 4 digits")
	ErrPinAlreadySet    = errors.New("PIN already set, use change PIN instead")
	ErrPinNotSet        = errors.New("no wallet PIN set")
	ErrIncorrectPin     = errors.New("incorrect PIN")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPinLocked        = errors.New("PIN locked due to too many failed attempts")
	ErrNoCredential     = errors.New("either current PIN or password is required")
)
