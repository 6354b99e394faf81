package utils

import (
	"crypto/rand"
	"math/big"
	"os"
)

func getenv(key string) string {
	return os.Getenv(key)
}

// GenerateOTP returns a random numeric code of the given length using
// crypto/rand.
func GenerateOTP(length int) string {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic("failed to generate otp: " + err.Error())
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits)
}
