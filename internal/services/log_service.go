package services

import (
	"context"
	"time"

	"orderhub/internal/models"
	"orderhub/internal/repositories"
)

// LogStats bundles the aggregate views over the log table.
type LogStats struct {
	Count     int64   `json:"count"`
	MaxLogID  int     `json:"max_log_id"`
	MinLogID  int     `json:"min_log_id"`
	AverageID float64 `json:"average_log_id"`
}

// LogService handles business logic related to system logs.
type LogService struct {
	logRepo repositories.LogRepository
}

// NewLogService creates a new LogService.
func NewLogService(logRepo repositories.LogRepository) *LogService {
	return &LogService{
		logRepo: logRepo,
	}
}

// SaveLog stores a new log entry; the timestamp defaults to now when unset.
func (s *LogService) SaveLog(ctx context.Context, log *models.SystemLog) (int, error) {
	if log.LogDateTime.IsZero() {
		log.LogDateTime = time.Now()
	}
	if err := s.logRepo.Create(ctx, log); err != nil {
		return 0, err
	}
	return log.LogID, nil
}

// UpdateLog overwrites the mutable fields of an existing log entry.
func (s *LogService) UpdateLog(ctx context.Context, logID int, log models.SystemLog) (int, error) {
	dbLog, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		return 0, err
	}

	dbLog.LogSerial = log.LogSerial
	dbLog.Description = log.Description
	dbLog.LogDateTime = log.LogDateTime

	if err := s.logRepo.Update(ctx, dbLog); err != nil {
		return 0, err
	}
	return logID, nil
}

// DeleteLog removes a log row entirely.
func (s *LogService) DeleteLog(ctx context.Context, logID int) (int, error) {
	if _, err := s.logRepo.GetByID(ctx, logID); err != nil {
		return 0, err
	}
	if err := s.logRepo.Delete(ctx, logID); err != nil {
		return 0, err
	}
	return logID, nil
}

// GetLog retrieves a single log entry by ID.
func (s *LogService) GetLog(ctx context.Context, logID int) (*models.SystemLog, error) {
	return s.logRepo.GetByID(ctx, logID)
}

// GetLogs retrieves all log entries.
func (s *LogService) GetLogs(ctx context.Context) ([]models.SystemLog, error) {
	return s.logRepo.GetAll(ctx)
}

// LogExists reports whether a log with the given ID is present.
func (s *LogService) LogExists(ctx context.Context, logID int) (bool, error) {
	return s.logRepo.Exists(ctx, logID)
}

// CountUserLogs returns how many logs a user has submitted.
func (s *LogService) CountUserLogs(ctx context.Context, userID int) (int64, error) {
	return s.logRepo.CountByUser(ctx, userID)
}

// GetLogStats computes the aggregate views (count, min, max, average) over
// the log table in the store.
func (s *LogService) GetLogStats(ctx context.Context) (*LogStats, error) {
	maxID, err := s.logRepo.MaxLogID(ctx)
	if err != nil {
		return nil, err
	}
	minID, err := s.logRepo.MinLogID(ctx)
	if err != nil {
		return nil, err
	}
	avgID, err := s.logRepo.AverageLogID(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &LogStats{
		Count:     int64(len(logs)),
		MaxLogID:  maxID,
		MinLogID:  minID,
		AverageID: avgID,
	}, nil
}

// GroupedLogs returns per-user log counts grouped in the store.
func (s *LogService) GroupedLogs(ctx context.Context) ([]repositories.UserLogCount, error) {
	return s.logRepo.GroupedByUser(ctx)
}

// JoinedLogs returns each log joined with its submitting user.
func (s *LogService) JoinedLogs(ctx context.Context) ([]repositories.JoinedLog, error) {
	return s.logRepo.JoinedWithUsers(ctx)
}

// LogDescriptions projects just the description column of every log.
func (s *LogService) LogDescriptions(ctx context.Context) ([]string, error) {
	return s.logRepo.Descriptions(ctx)
}

// SoftDeleteLog raises the Deleted flag via a raw parameterized statement.
// Returns whether exactly one row was touched.
func (s *LogService) SoftDeleteLog(ctx context.Context, logID int) (bool, error) {
	return s.logRepo.SoftDeleteRaw(ctx, logID)
}
