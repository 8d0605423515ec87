package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderhub/internal/cache"
	"orderhub/internal/idgen"
	"orderhub/internal/models"
	"orderhub/internal/repositories"
	"orderhub/pkg/rabbitmq"
)

// tempOrderKeyPrefix namespaces staged orders in the cache store. The full
// key is tempOrder:<orderId>.
const tempOrderKeyPrefix = "tempOrder:"

// tempOrderTTL is how long a staged order survives in the cache before it
// expires, migrated or not.
const tempOrderTTL = time.Hour

// StagedOrder is the composite record written to the cache: one order plus
// the items it was staged with.
type StagedOrder struct {
	Order      models.Order       `json:"order"`
	OrderItems []models.OrderItem `json:"orderItems"`
}

// OrderService handles the temporary-order staging workflow: orders are
// staged in the cache with generated identifiers, read back out, and
// migrated in bulk into the relational store.
type OrderService struct {
	store     cache.Store
	generator idgen.Generator
	orderRepo repositories.OrderRepository
	publisher rabbitmq.Publisher
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService. The publisher may be nil, in
// which case lifecycle events are skipped.
func NewOrderService(store cache.Store, generator idgen.Generator, orderRepo repositories.OrderRepository, publisher rabbitmq.Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		store:     store,
		generator: generator,
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// SaveTempOrder assigns the order and each item a fresh identifier from the
// cache counters, links every item to the order, and writes the composite
// record under tempOrder:<orderId> with a one-hour expiration. Returns the
// assigned order identifier.
//
// Counters consumed here are not reclaimed if the cache write fails, so a
// failed save leaves a gap in the identifier sequence. Identifiers are
// opaque, so the gap is accepted rather than corrected.
func (s *OrderService) SaveTempOrder(ctx context.Context, order models.Order, items []models.OrderItem) (int64, error) {
	orderID, err := s.generator.NextOrderID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to assign order ID: %w", err)
	}
	order.OrderID = orderID
	order.Items = nil

	for i := range items {
		items[i].OrderID = orderID
		itemID, err := s.generator.NextOrderItemID(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to assign order item ID: %w", err)
		}
		items[i].OrderItemID = itemID
	}

	payload, err := json.Marshal(StagedOrder{Order: order, OrderItems: items})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal staged order: %w", err)
	}

	key := tempOrderKeyPrefix + strconv.FormatInt(orderID, 10)
	if err := s.store.Set(ctx, key, payload, tempOrderTTL); err != nil {
		return 0, fmt.Errorf("failed to stage order %d: %w", orderID, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderStaged(orderID); err != nil {
			s.logger.Warn("failed to publish order.staged event",
				zap.Int64("order_id", orderID), zap.Error(err))
		}
	}

	return orderID, nil
}

// ReadTempOrder looks up a staged order by its staging identifier. Returns
// cache.ErrNotFound (wrapped) when the entry is absent or has expired.
//
// Only the order portion of the record is returned; the items are decoded
// but not surfaced. ReadTempOrders is the items-bearing read.
func (s *OrderService) ReadTempOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	key := tempOrderKeyPrefix + strconv.FormatInt(orderID, 10)
	payload, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged order %d: %w", orderID, err)
	}

	var staged StagedOrder
	if err := json.Unmarshal(payload, &staged); err != nil {
		return nil, fmt.Errorf("failed to decode staged order %d: %w", orderID, err)
	}
	return &staged.Order, nil
}

// ReadTempOrders enumerates every staged order via a prefix scan of the
// cache. Entries that fail to decode, or that expire between scan and fetch,
// are skipped; the read is best-effort, not a snapshot.
func (s *OrderService) ReadTempOrders(ctx context.Context) ([]StagedOrder, error) {
	var staged []StagedOrder
	err := s.store.Scan(ctx, tempOrderKeyPrefix, func(key string, value []byte) error {
		var record StagedOrder
		if err := json.Unmarshal(value, &record); err != nil {
			s.logger.Warn("skipping undecodable staged order",
				zap.String("key", key), zap.Error(err))
			return nil
		}
		staged = append(staged, record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan staged orders: %w", err)
	}
	return staged, nil
}

// TransferTempOrders bulk-moves all staged orders into the relational store.
// Staging identifiers are discarded: order and item IDs are reset so the
// store assigns fresh ones, and each item is re-linked to its own order. The
// batch is inserted in a single transaction; a failure aborts the whole run
// with nothing committed. Staged cache entries are left in place either way
// and lapse on their own expiration.
//
// Returns the newly assigned order identifiers in enumeration order.
func (s *OrderService) TransferTempOrders(ctx context.Context) ([]int64, error) {
	staged, err := s.ReadTempOrders(ctx)
	if err != nil {
		return nil, err
	}

	if len(staged) == 0 {
		return []int64{}, nil
	}

	runID := uuid.New().String()

	orders := make([]*models.Order, 0, len(staged))
	for _, record := range staged {
		order := record.Order
		order.OrderID = 0
		items := record.OrderItems
		for i := range items {
			items[i].OrderItemID = 0
			items[i].OrderID = 0
		}
		order.Items = items
		orders = append(orders, &order)
	}

	if err := s.orderRepo.CreateBatch(ctx, orders); err != nil {
		s.logger.Error("migration run aborted",
			zap.String("run_id", runID), zap.Int("staged", len(staged)), zap.Error(err))
		return nil, err
	}

	newIDs := make([]int64, 0, len(orders))
	for _, order := range orders {
		newIDs = append(newIDs, order.OrderID)
	}

	if s.publisher != nil && len(newIDs) > 0 {
		if err := s.publisher.PublishOrderMigrated(runID, newIDs); err != nil {
			s.logger.Warn("failed to publish order.migrated event",
				zap.String("run_id", runID), zap.Error(err))
		}
	}

	s.logger.Info("migration run complete",
		zap.String("run_id", runID), zap.Int("migrated", len(newIDs)))

	return newIDs, nil
}

// GetOrder retrieves a migrated order, items included, from the relational
// store.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

// GetOrders retrieves all migrated orders from the relational store.
func (s *OrderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}
