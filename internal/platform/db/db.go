package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open connects to Postgres with pool settings sized for the cache
// workload. Callers must import the pgx stdlib driver.
func Open(databaseURL string) (*sql.DB, error) {
	pg, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db open: open postgres database: %w", err)
	}

	pg.SetMaxOpenConns(10)
	pg.SetMaxIdleConns(10)
	pg.SetConnMaxLifetime(30 * time.Minute)

	if err := pg.Ping(); err != nil {
		pg.Close()
		return nil, fmt.Errorf("db open: verify postgres connection: %w", err)
	}

	return pg, nil
}
