package repositories

import (
	"context"

	"orderhub/internal/models"
)

// OrderRepository defines the interface for order data access in the
// relational store.
type OrderRepository interface {
	// CreateBatch inserts all orders, with their nested items, in a single
	// transaction. Identifiers are assigned by the store and written back
	// onto the passed structs.
	CreateBatch(ctx context.Context, orders []*models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
}
