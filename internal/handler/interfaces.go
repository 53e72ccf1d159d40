package handler

import (
	"context"
	"time"

	"github.com/sumzhq/sumz-portal/internal/model"
)

// UserService covers account registration and login verification.
type UserService interface {
	Signup(ctx context.Context, username, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// KeyService covers the API key lifecycle for one owning user.
type KeyService interface {
	Create(ctx context.Context, userID string) (string, error)
	List(ctx context.Context, userID string) ([]*model.APIKey, error)
	Regenerate(ctx context.Context, userID, keyValue string) (string, error)
	Delete(ctx context.Context, userID, keyValue string) error
}

// SessionStore creates and destroys session tokens.
type SessionStore interface {
	CreateSession(ctx context.Context, userID string, ttl time.Duration) (string, error)
	DeleteSession(ctx context.Context, token string) error
}
