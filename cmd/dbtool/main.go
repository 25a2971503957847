package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"driver-assist-service/internal/adapters/cache"
	"driver-assist-service/internal/config"
	"driver-assist-service/internal/platform/db"
)

// dbtool maintains the SQL place cache: it creates the schema and
// purges expired rows. Pointing it at Postgres (DATABASE_URL) or SQLite
// (DB_PATH) mirrors the server's backend selection.
func main() {
	purge := flag.Bool("purge", false, "delete expired cache rows after ensuring the schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbPath := config.Get("DB_PATH", "data/app.db")

	if err := run(databaseURL, dbPath, *purge); err != nil {
		log.Fatal(err)
	}
}

func run(databaseURL, dbPath string, purge bool) error {
	ctx := context.Background()

	if databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()

		log.Println("Ensuring postgres schema...")
		if err := initPostgresSchema(ctx, pg); err != nil {
			return err
		}

		if purge {
			n, err := cache.NewSQLPlaceCache(pg).PurgeExpired(ctx)
			if err != nil {
				return err
			}
			log.Printf("Purged %d expired rows.", n)
		}

		return nil
	}

	lite, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}
	defer lite.Close()

	log.Println("Ensuring sqlite schema...")
	if err := cache.InitSchema(lite); err != nil {
		return err
	}

	if purge {
		n, err := cache.NewSqlitePlaceCache(lite).PurgeExpired(ctx)
		if err != nil {
			return err
		}
		log.Printf("Purged %d expired rows.", n)
	}

	return nil
}

func initPostgresSchema(ctx context.Context, pg *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS place_cache (
		cache_key TEXT PRIMARY KEY,
		response JSONB NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_place_cache_expires_at
	ON place_cache(expires_at);
	`

	if _, err := pg.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}

	return nil
}
