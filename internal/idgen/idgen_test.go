package idgen_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderhub/internal/idgen"
)

func newTestGenerator(t *testing.T) *idgen.RedisGenerator {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return idgen.NewRedisGenerator(client)
}

func TestRedisGenerator_SequentialIDs(t *testing.T) {
	gen := newTestGenerator(t)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		id, err := gen.NextOrderID(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestRedisGenerator_IndependentCounters(t *testing.T) {
	gen := newTestGenerator(t)
	ctx := context.Background()

	orderID, err := gen.NextOrderID(ctx)
	require.NoError(t, err)
	itemID, err := gen.NextOrderItemID(ctx)
	require.NoError(t, err)
	itemID2, err := gen.NextOrderItemID(ctx)
	require.NoError(t, err)

	// The item counter starts from 1 regardless of the order counter.
	assert.Equal(t, int64(1), orderID)
	assert.Equal(t, int64(1), itemID)
	assert.Equal(t, int64(2), itemID2)
}

func TestRedisGenerator_ConcurrentCallersNeverCollide(t *testing.T) {
	gen := newTestGenerator(t)
	ctx := context.Background()

	const callers = 50
	ids := make(chan int64, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := gen.NextOrderID(ctx)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, callers)
	for id := range ids {
		assert.False(t, seen[id], "identifier %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, callers)
}

func TestMemoryGenerator(t *testing.T) {
	gen := idgen.NewMemoryGenerator()
	ctx := context.Background()

	id1, err := gen.NextOrderID(ctx)
	require.NoError(t, err)
	id2, err := gen.NextOrderID(ctx)
	require.NoError(t, err)
	itemID, err := gen.NextOrderItemID(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
	assert.Equal(t, int64(1), itemID)
}
