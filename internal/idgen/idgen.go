package idgen

import (
	"context"
	"sync/atomic"
)

// Generator mints monotonically increasing identifiers for orders and order
// items. The two counters are independent; increments must be atomic at the
// backing store level so concurrent callers never receive the same value.
type Generator interface {
	NextOrderID(ctx context.Context) (int64, error)
	NextOrderItemID(ctx context.Context) (int64, error)
}

// MemoryGenerator is an in-process Generator backed by atomic counters.
// It is intended for tests; counters reset with the process.
type MemoryGenerator struct {
	orderID     atomic.Int64
	orderItemID atomic.Int64
}

// NewMemoryGenerator creates a MemoryGenerator with both counters at zero.
func NewMemoryGenerator() *MemoryGenerator {
	return &MemoryGenerator{}
}

func (g *MemoryGenerator) NextOrderID(ctx context.Context) (int64, error) {
	return g.orderID.Add(1), nil
}

func (g *MemoryGenerator) NextOrderItemID(ctx context.Context) (int64, error) {
	return g.orderItemID.Add(1), nil
}
