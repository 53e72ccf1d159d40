// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sumzhq/sumz-portal/internal/metrics"
	"github.com/sumzhq/sumz-portal/internal/model"
	"github.com/sumzhq/sumz-portal/internal/repository"
)

// Service errors for API key operations.
var (
	ErrQuotaExceeded = errors.New("maximum number of API keys reached")
	ErrKeyNotFound   = errors.New("API key not found")
)

// APIKeyService handles the API key lifecycle: creation under a per-user
// quota, listing, regeneration, and deletion. All mutations are scoped to
// the owning user.
type APIKeyService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewAPIKeyService creates a new APIKeyService.
func NewAPIKeyService(repo *repository.Repository, recorder metrics.Recorder) *APIKeyService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &APIKeyService{
		repo:    repo,
		metrics: recorder,
	}
}

// Create issues a new API key for the user and returns its plaintext value.
// Returns ErrQuotaExceeded when the user already holds the maximum number of
// keys; nothing is created in that case.
//
// The quota check and the insert are not one atomic step: two concurrent
// creates from the same user can transiently exceed the quota by one.
func (s *APIKeyService) Create(ctx context.Context, userID string) (string, error) {
	count, err := s.repo.CountAPIKeysByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("count keys: %w", err)
	}
	if count >= model.MaxKeysPerUser {
		s.metrics.IncQuotaRejection()
		return "", ErrQuotaExceeded
	}

	value, err := s.generateUniqueKeyValue(ctx)
	if err != nil {
		return "", err
	}

	key := &model.APIKey{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Key:       value,
		Status:    model.StatusActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateAPIKey(ctx, key); err != nil {
		return "", fmt.Errorf("create key: %w", err)
	}

	s.metrics.IncKeyCreated()
	return value, nil
}

// List returns all API keys owned by the user.
func (s *APIKeyService) List(ctx context.Context, userID string) ([]*model.APIKey, error) {
	keys, err := s.repo.ListAPIKeysByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Regenerate replaces the value and creation timestamp of one of the user's
// keys, identified by its current value, and returns the new value. The old
// value becomes invalid immediately.
//
// The lookup conditions on the key value and the owner together, so a key
// owned by someone else fails exactly like a key that does not exist.
func (s *APIKeyService) Regenerate(ctx context.Context, userID, keyValue string) (string, error) {
	key, err := s.repo.GetAPIKeyForUser(ctx, keyValue, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAPIKeyNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("lookup key: %w", err)
	}

	newValue, err := s.generateUniqueKeyValue(ctx)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateAPIKeyValue(ctx, key.ID, newValue, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrAPIKeyNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("update key: %w", err)
	}

	s.metrics.IncKeyRegenerated()
	return newValue, nil
}

// Delete permanently removes one of the user's keys, identified by value.
// Uses the same ownership-folded lookup semantics as Regenerate.
func (s *APIKeyService) Delete(ctx context.Context, userID, keyValue string) error {
	if err := s.repo.DeleteAPIKeyForUser(ctx, keyValue, userID); err != nil {
		if errors.Is(err, repository.ErrAPIKeyNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("delete key: %w", err)
	}

	s.metrics.IncKeyDeleted()
	return nil
}

// generateUniqueKeyValue samples candidate values until one is unused.
// There is no retry bound: at 62^32 possible values a collision is
// astronomically unlikely, so the loop effectively runs once. The unique
// index on the key column backstops the narrow check-then-insert window.
func (s *APIKeyService) generateUniqueKeyValue(ctx context.Context) (string, error) {
	for {
		value := GenerateKeyValue()
		exists, err := s.repo.APIKeyValueExists(ctx, value)
		if err != nil {
			return "", fmt.Errorf("check key uniqueness: %w", err)
		}
		if !exists {
			return value, nil
		}
	}
}
