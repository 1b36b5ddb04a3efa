// internal/app/system/authutil/password.go
package authutil

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password constants
const (
	MinPasswordLength = 10
	MaxPasswordLength = 72 // bcrypt ignores anything longer
	BcryptCost        = 12
)

// Password strength errors, reported as startup warnings for the admin
// password.
var (
	ErrPasswordTooShort = errors.New("password must be at least 10 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrPasswordCommon   = errors.New("password is too common")
)

// commonPasswords is a list of very common passwords that are flagged.
var commonPasswords = map[string]bool{
	"1234567890":     true,
	"password123":    true,
	"motdepasse":     true,
	"azertyuiop":     true,
	"qwertyuiop":     true,
	"administrateur": true,
	"lunicar2024":    true,
	"lunicar2025":    true,
	"lunicar2026":    true,
	"admin12345":     true,
}

// ValidatePassword checks if a password is strong enough to guard the
// admin API. Returns nil if acceptable.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if commonPasswords[strings.ToLower(password)] {
		return ErrPasswordCommon
	}
	return nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plain-text password with a bcrypt hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Matcher returns a password check. With a non-empty hash the candidate is
// compared against the bcrypt hash; otherwise it is compared with plain in
// constant time.
func Matcher(plain, hash string) func(candidate string) bool {
	if hash != "" {
		return func(candidate string) bool {
			return CheckPassword(candidate, hash)
		}
	}
	return func(candidate string) bool {
		return subtle.ConstantTimeCompare([]byte(candidate), []byte(plain)) == 1
	}
}
