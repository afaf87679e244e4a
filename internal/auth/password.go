package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// minAdminPasswordLen guards the single admin account that can trigger
// refreshes and DC switches
const minAdminPasswordLen = 8

// ErrWeakPassword is returned when an admin password is too short to hash
var ErrWeakPassword = fmt.Errorf("admin password must be at least %d characters", minAdminPasswordLen)

// HashAdminPassword produces the value for auth.admin_password_hash.
// Passwords past bcrypt's 72 byte limit are refused rather than truncated.
func HashAdminPassword(password string) (string, error) {
	if len(strings.TrimSpace(password)) < minAdminPasswordLen {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(hash), nil
}

// checkAdminPassword compares a login attempt with the configured hash. A
// malformed hash is a configuration problem, not a wrong password.
func checkAdminPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("admin password hash unusable: %w", err)
	}
}
