package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"orderhub/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreateBatch inserts the orders and their items in one transaction. GORM's
// association handling cascades each order's Items slice, assigning fresh
// identifiers and pointing every item at its order's new key. A failure
// rolls the whole batch back.
func (r *GORMOrderRepository) CreateBatch(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&orders).Error
	})
	if err != nil {
		return fmt.Errorf("%w: batch insert of %d orders: %v", ErrWriteFailed, len(orders), err)
	}
	return nil
}

// GetByID retrieves a single order, items included, by its ID.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, `"OrderId" = ?`, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetAll retrieves all orders with their items.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Preload("Items").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}
