package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"orderhub/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create inserts a new user. The store assigns the identifier.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.AppUser) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update saves all fields of an existing user, including the Deleted flag.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.AppUser) error {
	res := r.db.WithContext(ctx).Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d for update: %w", user.AppUserID, ErrNotFound)
	}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *GORMUserRepository) GetByID(ctx context.Context, id int) (*models.AppUser, error) {
	var user models.AppUser
	if err := r.db.WithContext(ctx).First(&user, `"AppUserId" = ?`, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetAll retrieves all users. Soft-deleted users are included; the Deleted
// flag is the only marker.
func (r *GORMUserRepository) GetAll(ctx context.Context) ([]models.AppUser, error) {
	var users []models.AppUser
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// GetByIDWithLogs retrieves a user together with their system logs.
func (r *GORMUserRepository) GetByIDWithLogs(ctx context.Context, id int) (*models.AppUser, error) {
	var user models.AppUser
	if err := r.db.WithContext(ctx).Preload("SystemLogs").First(&user, `"AppUserId" = ?`, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with logs by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetAllWithLogs retrieves every user with their logs preloaded.
func (r *GORMUserRepository) GetAllWithLogs(ctx context.Context) ([]models.AppUser, error) {
	var users []models.AppUser
	if err := r.db.WithContext(ctx).Preload("SystemLogs").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get users with logs: %w", err)
	}
	return users, nil
}
