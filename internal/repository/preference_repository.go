package repository

import (
	"database/sql"
	"fmt"

	"stock-briefing/internal/apperrors"
)

// Well-known preference keys. Each key is an independent slot; values are
// overwritten wholesale, never merged.
const (
	KeyPortfolioStocks = "portfolio_stocks"
	KeyPortfolioEmail  = "portfolio_email"
	KeyAnalysisHistory = "analysis_history"
)

// PreferenceRepository provides data access methods for the preference table.
// It implements plain string key/value semantics: callers own serialization.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository creates a new PreferenceRepository with the provided database connection.
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get retrieves the value stored under the given key.
// Returns apperrors.ErrPreferenceNotFound if the key has never been written.
func (r *PreferenceRepository) Get(key string) (string, error) {
	query := `SELECT value FROM preference WHERE "key" = ?`

	var value string
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query preference table: %w", err)
	}

	return value, nil
}

// Set stores the value under the given key, replacing any previous value.
func (r *PreferenceRepository) Set(key, value string) error {
	query := `
		INSERT INTO preference ("key", value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}

	return nil
}

// Delete removes the value stored under the given key.
// Deleting an absent key is not an error.
func (r *PreferenceRepository) Delete(key string) error {
	query := `DELETE FROM preference WHERE "key" = ?`

	if _, err := r.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}

	return nil
}
