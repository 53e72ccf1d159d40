package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sumzhq/sumz-portal/internal/model"
)

// Common errors for API key repository operations.
var (
	ErrAPIKeyNotFound = errors.New("API key not found")
	ErrKeyValueExists = errors.New("API key value already exists")
)

// CreateAPIKey inserts a new API key into the database.
func (r *Repository) CreateAPIKey(ctx context.Context, key *model.APIKey) error {
	query := `
		INSERT INTO api_keys (id, user_id, key, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		key.ID,
		key.UserID,
		key.Key,
		key.Status,
		key.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrKeyValueExists
		}
		return fmt.Errorf("failed to create API key: %w", err)
	}

	return nil
}

// ListAPIKeysByUser retrieves all API keys for a user.
func (r *Repository) ListAPIKeysByUser(ctx context.Context, userID string) ([]*model.APIKey, error) {
	query := `
		SELECT id, user_id, key, status, created_at
		FROM api_keys
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list API keys: %w", err)
	}
	defer rows.Close()

	var keys []*model.APIKey
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan API key: %w", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating API keys: %w", err)
	}

	return keys, nil
}

// CountAPIKeysByUser returns the number of keys a user currently holds.
func (r *Repository) CountAPIKeysByUser(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM api_keys
		WHERE user_id = $1
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count API keys: %w", err)
	}

	return count, nil
}

// APIKeyValueExists reports whether any key with the given value exists,
// regardless of owner. Used by the generator's uniqueness check.
func (r *Repository) APIKeyValueExists(ctx context.Context, value string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM api_keys WHERE key = $1)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check API key existence: %w", err)
	}

	return exists, nil
}

// GetAPIKeyForUser retrieves an API key by value AND owner in a single
// two-predicate lookup. A key owned by another user is indistinguishable
// from a nonexistent key.
func (r *Repository) GetAPIKeyForUser(ctx context.Context, value, userID string) (*model.APIKey, error) {
	query := `
		SELECT id, user_id, key, status, created_at
		FROM api_keys
		WHERE key = $1 AND user_id = $2
	`

	key, err := scanAPIKey(r.pool.QueryRow(ctx, query, value, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAPIKeyNotFound
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	return key, nil
}

// UpdateAPIKeyValue replaces the key value and creation timestamp of an
// existing record and resets its status to Active.
func (r *Repository) UpdateAPIKeyValue(ctx context.Context, id, newValue string, createdAt time.Time) error {
	query := `
		UPDATE api_keys
		SET key = $2, created_at = $3, status = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, newValue, createdAt, model.StatusActive)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrKeyValueExists
		}
		return fmt.Errorf("failed to update API key: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrAPIKeyNotFound
	}

	return nil
}

// DeleteAPIKeyForUser permanently removes a key, conditioned on both the key
// value and the owner. Returns ErrAPIKeyNotFound when no row matches.
func (r *Repository) DeleteAPIKeyForUser(ctx context.Context, value, userID string) error {
	query := `
		DELETE FROM api_keys
		WHERE key = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, value, userID)
	if err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrAPIKeyNotFound
	}

	return nil
}

// scanAPIKey scans a single row into an APIKey model.
func scanAPIKey(row pgx.Row) (*model.APIKey, error) {
	var key model.APIKey

	err := row.Scan(
		&key.ID,
		&key.UserID,
		&key.Key,
		&key.Status,
		&key.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &key, nil
}
