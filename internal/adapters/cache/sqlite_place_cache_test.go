package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"driver-assist-service/internal/domain"
)

func newTestSqliteCache(t *testing.T) *SqlitePlaceCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db))
	return NewSqlitePlaceCache(db)
}

func samplePlaces() []domain.PlaceRecord {
	return []domain.PlaceRecord{
		{
			ID:       "place-1",
			Name:     "Shell Kavacik",
			Location: domain.GeoPoint{Latitude: 41.09, Longitude: 29.08},
			Types:    []string{"gas_station"},
			Rating:   4.2,
			Address:  "Kavacik, Istanbul",
		},
		{
			ID:       "place-2",
			Name:     "Bolu Dinlenme Tesisi",
			Location: domain.GeoPoint{Latitude: 40.73, Longitude: 31.6},
			Types:    []string{"truck_stop", "restaurant"},
		},
	}
}

func TestSqlitePlaceCacheRoundTrip(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	_, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Put(ctx, "k1", samplePlaces(), time.Hour))

	got, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 2)
	assert.Equal(t, "Shell Kavacik", got[0].Name)
	assert.Equal(t, []string{"truck_stop", "restaurant"}, got[1].Types)
}

func TestSqlitePlaceCacheStoresEmptyResults(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "empty", []domain.PlaceRecord{}, time.Hour))

	got, hit, err := c.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Empty(t, got)
}

func TestSqlitePlaceCacheExpiry(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	require.NoError(t, c.Put(ctx, "k1", samplePlaces(), time.Minute))

	_, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, hit)

	clock = clock.Add(2 * time.Minute)
	_, hit, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSqlitePlaceCachePutReplaces(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k1", samplePlaces(), time.Hour))
	require.NoError(t, c.Put(ctx, "k1", samplePlaces()[:1], time.Hour))

	got, hit, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, hit)
	assert.Len(t, got, 1)
}

func TestSqlitePlaceCachePurgeExpired(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	require.NoError(t, c.Put(ctx, "stale", samplePlaces(), time.Minute))
	require.NoError(t, c.Put(ctx, "fresh", samplePlaces(), time.Hour))

	clock = clock.Add(10 * time.Minute)
	n, err := c.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, hit, err := c.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestSqlitePlaceCacheRejectsBadInput(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	_, _, err := c.Get(ctx, "")
	assert.Error(t, err)

	err = c.Put(ctx, "", samplePlaces(), time.Hour)
	assert.Error(t, err)

	err = c.Put(ctx, "k1", samplePlaces(), 0)
	assert.Error(t, err)
}
