// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account that owns API keys.
// PasswordHash holds a bcrypt hash; the plaintext password is never stored.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialize
	CreatedAt    time.Time `json:"created_at"`
}
