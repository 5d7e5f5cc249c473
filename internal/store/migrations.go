package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema uses IF NOT EXISTS so Migrate is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id                  TEXT PRIMARY KEY,
		algorithm           TEXT NOT NULL,
		name                TEXT NOT NULL,
		preemptive          INTEGER NOT NULL DEFAULT 0,
		time_quantum        INTEGER NOT NULL DEFAULT 0,
		levels_time_quantum TEXT NOT NULL DEFAULT '[]',
		processes           TEXT NOT NULL,
		timeline            TEXT NOT NULL,
		created_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
