package repositories

import (
	"context"

	"orderhub/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.AppUser) error
	Update(ctx context.Context, user *models.AppUser) error
	GetByID(ctx context.Context, id int) (*models.AppUser, error)
	GetAll(ctx context.Context) ([]models.AppUser, error)
	// GetByIDWithLogs loads the user together with their system logs.
	GetByIDWithLogs(ctx context.Context, id int) (*models.AppUser, error)
	GetAllWithLogs(ctx context.Context) ([]models.AppUser, error)
}
