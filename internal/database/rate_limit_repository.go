package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// RateLimitRepository tracks request counts per client in the database
// so limits hold across multiple server instances.
type RateLimitRepository struct {
	db *sqlx.DB
}

// NewRateLimitRepository creates a new RateLimitRepository
func NewRateLimitRepository(db *sqlx.DB) *RateLimitRepository {
	return &RateLimitRepository{db: db}
}

// Increment bumps the counter for a client key in the current window and
// returns the new count. A fresh window starts at one.
func (r *RateLimitRepository) Increment(clientKey string, window time.Duration) (int, error) {
	windowStart := time.Now().Truncate(window)

	query := `
		INSERT INTO rate_limit_entries (client_key, window_start, request_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (client_key, window_start)
		DO UPDATE SET request_count = rate_limit_entries.request_count + 1
		RETURNING request_count`

	var count int
	if err := r.db.Get(&count, query, clientKey, windowStart); err != nil {
		return 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	return count, nil
}

// PurgeExpired deletes counters from windows that have already closed.
// Returns the number of rows removed.
func (r *RateLimitRepository) PurgeExpired(window time.Duration) (int64, error) {
	result, err := r.db.Exec(
		`DELETE FROM rate_limit_entries WHERE window_start < $1`,
		time.Now().Add(-2*window))
	if err != nil {
		return 0, fmt.Errorf("failed to purge rate limit entries: %w", err)
	}

	return result.RowsAffected()
}
