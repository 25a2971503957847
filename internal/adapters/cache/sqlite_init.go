package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the SQLite cache tables if they do not exist.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlaceCacheQuery := `
	CREATE TABLE IF NOT EXISTS place_cache (
        cache_key TEXT PRIMARY KEY,
        response TEXT NOT NULL,
        expires_at INTEGER NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_place_cache_expires_at
    ON place_cache(expires_at);
	`

	if _, err := tx.Exec(createPlaceCacheQuery); err != nil {
		return fmt.Errorf("init schema: create place_cache table: %w", err)
	}

	if _, err := tx.Exec(createIndexQuery); err != nil {
		return fmt.Errorf("init schema: create place_cache index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}
