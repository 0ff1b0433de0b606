package security

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// adminHashCost is the work factor of hashes printed by -hash-password.
const adminHashCost = 12

// ErrEmptyPassword is returned when hashing an empty admin password.
var ErrEmptyPassword = errors.New("security: admin password is empty")

// HashAdminPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashAdminPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), adminHashCost)
	if err != nil {
		return "", fmt.Errorf("security: hash admin password: %w", err)
	}
	return string(hash), nil
}

// ValidatePasswordHash fails when a configured hash could never match a login.
func ValidatePasswordHash(hash string) error {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("security: ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}
	return nil
}

func hashMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
