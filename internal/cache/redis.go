package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// scanBatchSize is a hint for how many keys each SCAN round trip returns.
const scanBatchSize = 100

// RedisStore is a Redis implementation of Store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore around an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

// Set stores a serialized record under key, expiring after ttl.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

// Get returns the record stored under key. Absent and expired keys both
// surface as ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return val, nil
}

// Scan enumerates all entries under prefix with cursor-based SCAN iteration,
// so the walk stays bounded as the keyspace grows. Each invocation restarts
// from the zero cursor; the walk is done when the cursor returns to zero.
// Keys that disappear between SCAN and GET (expiry races) are skipped.
func (s *RedisStore) Scan(ctx context.Context, prefix string, fn func(key string, value []byte) error) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, prefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("%w: scan %s: %v", ErrUnavailable, prefix, err)
		}
		for _, key := range keys {
			val, err := s.client.Get(ctx, key).Bytes()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
			}
			if err := fn(key, val); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
