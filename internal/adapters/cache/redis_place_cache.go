package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"driver-assist-service/internal/domain"
)

const redisKeyPrefix = "places:"

// RedisPlaceCache stores place-search results in Redis. Expiry is
// delegated to Redis key TTLs, so no purge job is needed.
type RedisPlaceCache struct {
	Client *redis.Client
}

func NewRedisPlaceCache(client *redis.Client) *RedisPlaceCache {
	return &RedisPlaceCache{Client: client}
}

func (r *RedisPlaceCache) Get(ctx context.Context, key string) ([]domain.PlaceRecord, bool, error) {
	if r.Client == nil {
		return nil, false, errors.New("place cache: redis client is nil")
	}

	if key == "" {
		return nil, false, errors.New("get place cache: key must not be empty")
	}

	payload, err := r.Client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get place cache: redis get: %w", err)
	}

	var records []domain.PlaceRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, false, fmt.Errorf("get place cache: decode payload: %w", err)
	}

	return records, true, nil
}

func (r *RedisPlaceCache) Put(ctx context.Context, key string, records []domain.PlaceRecord, ttl time.Duration) error {
	if r.Client == nil {
		return errors.New("place cache: redis client is nil")
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

	if err := r.Client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("insert place cache key=%q: redis set: %w", key, err)
	}

	return nil
}
