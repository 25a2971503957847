package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"driver-assist-service/internal/domain"
)

// SQLite backed cache for place-search results. Keys are expected to be
// consistent (e.g., already normalized) by the caller.
type SqlitePlaceCache struct {
	DB *sql.DB

	// now is injectable for expiry tests.
	now func() time.Time
}

func NewSqlitePlaceCache(db *sql.DB) *SqlitePlaceCache {
	return &SqlitePlaceCache{DB: db, now: time.Now}
}

// Get fetches the cached records for a key. Expired rows count as a
// miss; they are left for the purge job to delete.
func (s *SqlitePlaceCache) Get(ctx context.Context, key string) ([]domain.PlaceRecord, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("place cache: db is nil")
	}

	if key == "" {
		return nil, false, errors.New("get place cache: key must not be empty")
	}

	q := `
	SELECT response, expires_at
	FROM place_cache
	WHERE cache_key = ?;
	`

	var payload []byte
	var expiresAt int64
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get place cache: query place_cache table: %w", err)
	}

	if s.now().Unix() >= expiresAt {
		return nil, false, nil
	}

	var records []domain.PlaceRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, false, fmt.Errorf("get place cache: decode payload: %w", err)
	}

	return records, true, nil
}

// Put stores records under key. An existing row for the key is
// replaced and its expiry reset.
func (s *SqlitePlaceCache) Put(ctx context.Context, key string, records []domain.PlaceRecord, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("place cache: db is nil")
	}

	if key == "" {
		return errors.New("insert place cache: key must not be empty")
	}

	if ttl <= 0 {
		return fmt.Errorf("insert place cache: ttl must be positive, got %v", ttl)
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("insert place cache: encode payload: %w", err)
	}

	q := `
	INSERT OR REPLACE INTO place_cache (cache_key, response, expires_at)
	VALUES (?, ?, ?);
	`

	expiresAt := s.now().Add(ttl).Unix()
	if _, err := s.DB.ExecContext(ctx, q, key, payload, expiresAt); err != nil {
		return fmt.Errorf("insert place cache key=%q: %w", key, err)
	}

	return nil
}

// PurgeExpired removes rows past their expiry and reports how many
// were deleted.
func (s *SqlitePlaceCache) PurgeExpired(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("place cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM place_cache WHERE expires_at <= ?;`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge place cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge place cache: rows affected: %w", err)
	}

	return n, nil
}
