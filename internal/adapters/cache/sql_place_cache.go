package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"driver-assist-service/internal/domain"
	"driver-assist-service/internal/platform/obs"
)

// SQLPlaceCache is a Postgres-backed cache for place-search results.
type SQLPlaceCache struct {
	DB *sql.DB
}

func NewSQLPlaceCache(db *sql.DB) *SQLPlaceCache {
	return &SQLPlaceCache{DB: db}
}

// Get fetches the cached records for a key. Expired rows are filtered
// in the query itself.
func (s *SQLPlaceCache) Get(ctx context.Context, key string) (_ []domain.PlaceRecord, _ bool, err error) {
	defer obs.Time(ctx, "place.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("place cache: db is nil")
	}

	if key == "" {
		return nil, false, errors.New("get place cache: key must not be empty")
	}

	q := `
	SELECT response
	FROM place_cache
	WHERE cache_key = $1
		AND expires_at > NOW();
	`

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get place cache: query place_cache table: %w", err)
	}

	var records []domain.PlaceRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, false, fmt.Errorf("get place cache: decode payload: %w", err)
	}

	return records, true, nil
}

// Put stores records under key, replacing any existing row.
func (s *SQLPlaceCache) Put(ctx context.Context, key string, records []domain.PlaceRecord, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "place.cache.Put")(&err)

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
	INSERT INTO place_cache (cache_key, response, expires_at)
	VALUES ($1, $2, NOW() + $3 * INTERVAL '1 second')
	ON CONFLICT (cache_key) DO UPDATE
	SET response = EXCLUDED.response,
		expires_at = EXCLUDED.expires_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, payload, int64(ttl.Seconds())); err != nil {
		return fmt.Errorf("insert place cache key=%q: %w", key, err)
	}

	return nil
}

// PurgeExpired removes rows past their expiry and reports how many
// were deleted.
func (s *SQLPlaceCache) PurgeExpired(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("place cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM place_cache WHERE expires_at <= NOW();`)
	if err != nil {
		return 0, fmt.Errorf("purge place cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge place cache: rows affected: %w", err)
	}

	return n, nil
}
