// Package auth provides password hashing and request identity helpers.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = bcrypt.DefaultCost

// ErrPasswordTooLong indicates the password exceeds bcrypt's 72-byte input limit.
var ErrPasswordTooLong = errors.New("password exceeds maximum length")

// HashPassword creates a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if the password matches the stored hash.
// Returns false for any mismatch or malformed hash; callers must not
// distinguish the two (anti-enumeration).
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
