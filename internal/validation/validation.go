// Package validation holds the input checks that run before any request
// touches storage.
package validation

import "regexp"

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	pinRegex   = regexp.MustCompile(`^\d{4}$`)
)

// IsEmail reports whether s looks like a valid email address.
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsPin reports whether s is exactly 4 ASCII digits.
func IsPin(s string) bool {
	return pinRegex.MatchString(s)
}

// HasSpecialChar checks if a string contains at least one special character.
func HasSpecialChar(s string) bool {
	specialChars := regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	return specialChars.MatchString(s)
}
