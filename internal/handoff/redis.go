package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/intern-ease/internal/types"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "intern-ease:handoff:"

// RedisStore keeps entries in Redis with a per-key expiry
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to redisURL and verifies the connection
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	if redisURL == "" {
		return nil, errors.New("REDIS_URL is required for the redis backend")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Put stores the encoded result with the store TTL
func (s *RedisStore) Put(ctx context.Context, key string, result *types.GenerationResult) error {
	payload, err := encode(result)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return nil
}

// Get returns the result stored under key
func (s *RedisStore) Get(ctx context.Context, key string) (*types.GenerationResult, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}
	return decode(key, payload)
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
