/*
Package randx provides cryptographically secure random identifiers and codes.

It generates the numeric email verification codes and the UUID identifiers
used for users, jobs, applications, conversations, and messages.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	// VerificationCodeLength is the fixed length of email verification codes.
	VerificationCodeLength = 6

	// VerificationCodeTTL is how long an issued code stays redeemable.
	VerificationCodeTTL = 15 * time.Minute

	// digits is the character set used for verification codes.
	digits = "0123456789"
)

// VerificationCode generates a numeric code of VerificationCodeLength digits
// using crypto/rand.
func VerificationCode() (string, error) {
	result := make([]byte, VerificationCodeLength)

	for i := range VerificationCodeLength {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit for verification code: %w", err)
		}

		result[i] = digits[num.Int64()]
	}

	return string(result), nil
}

// IsValidVerificationCode reports whether the given string has the shape of
// a verification code: exact length, digits only.
func IsValidVerificationCode(code string) bool {
	if len(code) != VerificationCodeLength {
		return false
	}

	for _, char := range code {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}

// NewID generates a UUID v4 string used as the primary key for all entities.
func NewID() string {
	return uuid.New().String()
}

// IsValidID reports whether the given string parses as a UUID.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
