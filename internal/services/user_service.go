package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"orderhub/internal/models"
	"orderhub/internal/repositories"
)

// UserService handles business logic related to users.
type UserService struct {
	userRepo repositories.UserRepository
	logRepo  repositories.LogRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, logRepo repositories.LogRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		logRepo:  logRepo,
	}
}

// SaveUser stores a new user. The password is hashed before it touches the
// store; the register date defaults to now when unset.
func (s *UserService) SaveUser(ctx context.Context, user *models.AppUser) (int, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if user.RegisterDate.IsZero() {
		user.RegisterDate = time.Now()
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return 0, err
	}
	return user.AppUserID, nil
}

// UpdateUser overwrites the mutable fields of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, userID int, user models.AppUser) (int, error) {
	dbUser, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	dbUser.Username = user.Username
	dbUser.EmailAddress = user.EmailAddress
	dbUser.Password = string(hashed)

	if err := s.userRepo.Update(ctx, dbUser); err != nil {
		return 0, err
	}
	return dbUser.AppUserID, nil
}

// GetUser retrieves a single user by ID.
func (s *UserService) GetUser(ctx context.Context, userID int) (*models.AppUser, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetAllUsers retrieves all users, soft-deleted ones included.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.AppUser, error) {
	return s.userRepo.GetAll(ctx)
}

// DeleteUser soft-deletes a user: the Deleted flag is raised, the row stays.
func (s *UserService) DeleteUser(ctx context.Context, userID int) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	user.Deleted = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return 0, err
	}
	return user.AppUserID, nil
}

// GetUserWithLogs retrieves a user together with their system logs.
func (s *UserService) GetUserWithLogs(ctx context.Context, userID int) (*models.AppUser, error) {
	return s.userRepo.GetByIDWithLogs(ctx, userID)
}

// GetUsersWithLogs retrieves every user with their logs attached.
func (s *UserService) GetUsersWithLogs(ctx context.Context) ([]models.AppUser, error) {
	return s.userRepo.GetAllWithLogs(ctx)
}

// CrossUserLogs pairs every user with every log description and renders one
// sentence per combination. A demonstration of a cartesian pairing done in
// application code over two full fetches.
func (s *UserService) CrossUserLogs(ctx context.Context) ([]string, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(users)*len(logs))
	for _, user := range users {
		for _, log := range logs {
			result = append(result, fmt.Sprintf("%s submitted operation with description of %s", user.Username, log.Description))
		}
	}
	return result, nil
}
