package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"orderhub/internal/models"
)

// GORMLogRepository is a GORM implementation of LogRepository.
type GORMLogRepository struct {
	db *gorm.DB
}

// NewGORMLogRepository creates a new instance of GORMLogRepository.
func NewGORMLogRepository(db *gorm.DB) *GORMLogRepository {
	return &GORMLogRepository{
		db: db,
	}
}

// Create inserts a new log entry.
func (r *GORMLogRepository) Create(ctx context.Context, log *models.SystemLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create log: %w", err)
	}
	return nil
}

// Update saves all fields of an existing log entry.
func (r *GORMLogRepository) Update(ctx context.Context, log *models.SystemLog) error {
	res := r.db.WithContext(ctx).Save(log)
	if res.Error != nil {
		return fmt.Errorf("failed to update log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("log with ID %d for update: %w", log.LogID, ErrNotFound)
	}
	return nil
}

// Delete removes a log row by ID.
func (r *GORMLogRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&models.SystemLog{}, `"LogId" = ?`, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete log %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("log with ID %d for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// GetByID retrieves a single log entry by its ID.
func (r *GORMLogRepository) GetByID(ctx context.Context, id int) (*models.SystemLog, error) {
	var log models.SystemLog
	if err := r.db.WithContext(ctx).First(&log, `"LogId" = ?`, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("log with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get log by ID %d: %w", id, err)
	}
	return &log, nil
}

// GetAll retrieves all log entries.
func (r *GORMLogRepository) GetAll(ctx context.Context) ([]models.SystemLog, error) {
	var logs []models.SystemLog
	if err := r.db.WithContext(ctx).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get all logs: %w", err)
	}
	return logs, nil
}

// Exists reports whether a log with the given ID is present.
func (r *GORMLogRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SystemLog{}).Where(`"LogId" = ?`, id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check log %d exists: %w", id, err)
	}
	return count > 0, nil
}

// CountByUser returns how many logs the given user has submitted.
func (r *GORMLogRepository) CountByUser(ctx context.Context, userID int) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SystemLog{}).Where(`"AppUserId" = ?`, userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count logs for user %d: %w", userID, err)
	}
	return count, nil
}

// MaxLogID returns the largest log identifier in the store.
func (r *GORMLogRepository) MaxLogID(ctx context.Context) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).Model(&models.SystemLog{}).Select(`COALESCE(MAX("LogId"), 0)`).Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("failed to read max log ID: %w", err)
	}
	return max, nil
}

// MinLogID returns the smallest log identifier in the store.
func (r *GORMLogRepository) MinLogID(ctx context.Context) (int, error) {
	var min int
	if err := r.db.WithContext(ctx).Model(&models.SystemLog{}).Select(`COALESCE(MIN("LogId"), 0)`).Scan(&min).Error; err != nil {
		return 0, fmt.Errorf("failed to read min log ID: %w", err)
	}
	return min, nil
}

// AverageLogID returns the average of all log identifiers. The ID is the
// only numeric column, which makes it the demonstration target for AVG.
func (r *GORMLogRepository) AverageLogID(ctx context.Context) (float64, error) {
	var avg float64
	if err := r.db.WithContext(ctx).Model(&models.SystemLog{}).Select(`COALESCE(AVG("LogId"), 0)`).Scan(&avg).Error; err != nil {
		return 0, fmt.Errorf("failed to read average log ID: %w", err)
	}
	return avg, nil
}

// GroupedByUser groups logs by submitting user and counts them in the store.
func (r *GORMLogRepository) GroupedByUser(ctx context.Context) ([]UserLogCount, error) {
	var rows []UserLogCount
	err := r.db.WithContext(ctx).
		Model(&models.SystemLog{}).
		Select(`"AppUserId" AS app_user_id, COUNT(*) AS log_count`).
		Group(`"AppUserId"`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group logs by user: %w", err)
	}
	return rows, nil
}

// JoinedWithUsers joins each log to its user and projects a narrow row.
func (r *GORMLogRepository) JoinedWithUsers(ctx context.Context) ([]JoinedLog, error) {
	var rows []JoinedLog
	err := r.db.WithContext(ctx).
		Model(&models.SystemLog{}).
		Select(`"SystemLog"."Description" AS description, "AppUser"."Username" AS username, "AppUser"."EmailAddress" AS email_address`).
		Joins(`JOIN "AppUser" ON "AppUser"."AppUserId" = "SystemLog"."AppUserId"`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to join logs with users: %w", err)
	}
	return rows, nil
}

// Descriptions projects just the description column of every log.
func (r *GORMLogRepository) Descriptions(ctx context.Context) ([]string, error) {
	var descriptions []string
	err := r.db.WithContext(ctx).
		Model(&models.SystemLog{}).
		Select(`"Description"`).
		Scan(&descriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read log descriptions: %w", err)
	}
	return descriptions, nil
}

// SoftDeleteRaw raises the Deleted flag with a raw parameterized statement,
// bypassing the ORM's change tracking. Returns whether exactly one row was
// touched.
func (r *GORMLogRepository) SoftDeleteRaw(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`UPDATE "SystemLog" SET "Deleted" = ? WHERE "LogId" = ?`, true, id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to soft-delete log %d: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}
