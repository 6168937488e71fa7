package security

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
// bcrypt's comparison is constant-time on the digest.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

const symbolSet = "@$!%*?&"

var ErrWeakPassword = errors.New(
	"Password must be at least 8 characters with uppercase, lowercase, number, and special character (@$!%*?&)",
)

// ValidateStrength enforces the password policy: minimum 8 characters drawn
// only from letters, digits and the fixed symbol set, with at least one of
// each class present.
func ValidateStrength(plain string) error {
	if len(plain) < 8 {
		return ErrWeakPassword
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool

	for _, r := range plain {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(symbolSet, r):
			hasSymbol = true
		default:
			// characters outside the allowed set fail the policy outright
			return ErrWeakPassword
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}

	return nil
}
