package db

import (
	"context"
	"fmt"
)

// migrations upgrade the schema in order. Index i moves user_version
// from i to i+1. Statements must be safe on a freshly created schema.
var migrations = [][]string{
	// Older builds wrote started_at via the driver's time.Time
	// formatting ("2006-01-02 15:04:05.999 +0000 UTC"), which SQLite's
	// date functions cannot compare. Truncate to the stored layout.
	{
		`UPDATE load_events
		 SET started_at = SUBSTR(started_at, 1, 23)
		 WHERE length(started_at) > 23 AND started_at LIKE '% UTC'`,
	},
	{
		`CREATE INDEX IF NOT EXISTS idx_load_events_status ON load_events(status, started_at)`,
	},
}

// SchemaVersion returns the schema version recorded in the database.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

func (db *DB) migrate(ctx context.Context) error {
	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for v := current; v < len(migrations); v++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", v+1, err)
		}
		for _, stmt := range migrations[v] {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d failed: %w", v+1, err)
			}
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", v+1, err)
		}
	}

	return nil
}
