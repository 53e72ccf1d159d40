// Package model defines domain entities for the application.
package model

import "time"

// StatusActive is the only status this system ever assigns to a key.
// The column exists for forward compatibility; no code path sets another value.
const StatusActive = "Active"

// MaxKeysPerUser is the fixed cap on simultaneous API keys per account.
const MaxKeysPerUser = 5

// createdAtLayout matches the timestamp format exposed on the listing endpoint.
const createdAtLayout = "2006-01-02 15:04:05"

// APIKey represents an API key entity. The key value is the opaque bearer
// token itself; it is stored as issued so that regenerate and delete can look
// records up by value.
type APIKey struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Key       string    `json:"key"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FormattedCreatedAt renders the creation timestamp as "YYYY-MM-DD HH:MM:SS".
func (k *APIKey) FormattedCreatedAt() string {
	return k.CreatedAt.Format(createdAtLayout)
}

// APIKeyResponse is one entry of the key listing endpoint.
type APIKeyResponse struct {
	Key       string `json:"key"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`
}

// ToResponse converts an APIKey to its listing representation.
func (k *APIKey) ToResponse() APIKeyResponse {
	return APIKeyResponse{
		Key:       k.Key,
		CreatedAt: k.FormattedCreatedAt(),
		Status:    k.Status,
	}
}
