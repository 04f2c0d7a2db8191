package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// WithinTx begins a transaction, runs fn with it, and commits. The
// transaction is rolled back whenever fn returns an error or panics, so
// callers cannot leave a half-written booking/payment pair behind.
func WithinTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
