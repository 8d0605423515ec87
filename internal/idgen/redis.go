package idgen

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Counter key names. The counters live in the cache store, so identifiers
// stay monotonic across service restarts until the store itself is cleared.
const (
	orderCounterKey     = "OrderIdCounter"
	orderItemCounterKey = "OrderItemIdCounter"
)

// RedisGenerator mints identifiers with INCR, which is atomic on the server
// side. No application-level locking is needed.
type RedisGenerator struct {
	client *redis.Client
}

// NewRedisGenerator creates a new RedisGenerator around an existing client.
func NewRedisGenerator(client *redis.Client) *RedisGenerator {
	return &RedisGenerator{
		client: client,
	}
}

func (g *RedisGenerator) NextOrderID(ctx context.Context) (int64, error) {
	id, err := g.client.Incr(ctx, orderCounterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", orderCounterKey, err)
	}
	return id, nil
}

func (g *RedisGenerator) NextOrderItemID(ctx context.Context) (int64, error) {
	id, err := g.client.Incr(ctx, orderItemCounterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", orderItemCounterKey, err)
	}
	return id, nil
}
