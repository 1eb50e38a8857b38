package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stockflow/backend/internal/domain/shared"
)

const redisKeyPrefix = "event:idempotency:"

// RedisConfig holds the connection settings for the idempotency store.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisIdempotencyStore backs the processed-event record with Redis so
// that every instance of the service sees the same dedup state.
type RedisIdempotencyStore struct {
	client *redis.Client
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)

// NewRedisIdempotencyStore connects to Redis and verifies the
// connection with a ping before returning the store.
func NewRedisIdempotencyStore(cfg RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisIdempotencyStore{client: client}, nil
}

// MarkProcessed claims the key with SETNX, so the first caller wins
// even across instances. It reports false when the key is already held.
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	claimed, err := s.client.SetNX(ctx, redisKeyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark event processed: %w", err)
	}
	return claimed, nil
}

// IsProcessed reports whether the key is currently held.
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("check event processed: %w", err)
	}
	return n > 0, nil
}

// Close releases the Redis connection.
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}
