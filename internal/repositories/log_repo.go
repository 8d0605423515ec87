package repositories

import (
	"context"

	"orderhub/internal/models"
)

// UserLogCount is the grouped projection of logs per user.
type UserLogCount struct {
	AppUserID int   `json:"app_user_id"`
	LogCount  int64 `json:"log_count"`
}

// JoinedLog is the projection of a log joined with the user who submitted it.
type JoinedLog struct {
	Description  string `json:"description"`
	Username     string `json:"username"`
	EmailAddress string `json:"email_address"`
}

// LogRepository defines the interface for system-log data access. It doubles
// as the catalogue of query shapes the store supports: keyed reads,
// aggregates, grouping, joins, projections, and raw parameterized statements.
type LogRepository interface {
	Create(ctx context.Context, log *models.SystemLog) error
	Update(ctx context.Context, log *models.SystemLog) error
	// Delete removes the row entirely. See SoftDeleteRaw for the flag-only
	// variant.
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*models.SystemLog, error)
	GetAll(ctx context.Context) ([]models.SystemLog, error)
	Exists(ctx context.Context, id int) (bool, error)
	CountByUser(ctx context.Context, userID int) (int64, error)
	MaxLogID(ctx context.Context) (int, error)
	MinLogID(ctx context.Context) (int, error)
	AverageLogID(ctx context.Context) (float64, error)
	// GroupedByUser returns per-user log counts computed by the store.
	GroupedByUser(ctx context.Context) ([]UserLogCount, error)
	// JoinedWithUsers projects each log with its submitting user's fields.
	JoinedWithUsers(ctx context.Context) ([]JoinedLog, error)
	Descriptions(ctx context.Context) ([]string, error)
	// SoftDeleteRaw raises the Deleted flag with a raw parameterized UPDATE.
	SoftDeleteRaw(ctx context.Context, id int) (bool, error)
}
