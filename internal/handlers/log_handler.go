package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"orderhub/internal/models"
	"orderhub/internal/services"
)

// LogHandler handles HTTP requests for system logs, including the
// aggregate, grouping, join, and projection views.
type LogHandler struct {
	service *services.LogService
	logger  *zap.Logger
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(service *services.LogService, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the log routes with the Fiber app.
func (h *LogHandler) RegisterRoutes(router fiber.Router) {
	logRoutes := router.Group("/logs")
	logRoutes.Post("/", h.HandleSaveLog)
	logRoutes.Get("/", h.HandleGetLogs)
	logRoutes.Get("/stats", h.HandleGetLogStats)
	logRoutes.Get("/grouped", h.HandleGetGroupedLogs)
	logRoutes.Get("/joined", h.HandleGetJoinedLogs)
	logRoutes.Get("/descriptions", h.HandleGetLogDescriptions)
	logRoutes.Get("/exists/:id", h.HandleLogExists)
	logRoutes.Get("/count/:userId", h.HandleCountUserLogs)
	logRoutes.Get("/:id", h.HandleGetLog)
	logRoutes.Put("/:id", h.HandleUpdateLog)
	logRoutes.Delete("/:id", h.HandleDeleteLog)
	logRoutes.Patch("/:id/soft-delete", h.HandleSoftDeleteLog)
}

// HandleSaveLog stores a new log entry and returns the assigned identifier.
func (h *LogHandler) HandleSaveLog(c *fiber.Ctx) error {
	var log models.SystemLog
	if err := c.BodyParser(&log); err != nil {
		return respondBadRequest(c, "Invalid request body", err)
	}
	if err := models.Validate(log); err != nil {
		return respondBadRequest(c, "Invalid log", err)
	}

	logID, err := h.service.SaveLog(c.Context(), &log)
	if err != nil {
		h.logger.Error("failed to save log", zap.Error(err))
		return respondError(c, "Could not save log", err)
	}
	return c.JSON(fiber.Map{"log_id": logID})
}

// HandleGetLog retrieves a single log entry by ID.
func (h *LogHandler) HandleGetLog(c *fiber.Ctx) error {
	logID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid log ID", err)
	}

	log, err := h.service.GetLog(c.Context(), logID)
	if err != nil {
		return respondError(c, "Could not retrieve log", err)
	}
	return c.JSON(log)
}

// HandleGetLogs retrieves all log entries.
func (h *LogHandler) HandleGetLogs(c *fiber.Ctx) error {
	logs, err := h.service.GetLogs(c.Context())
	if err != nil {
		return respondError(c, "Could not retrieve logs", err)
	}
	return c.JSON(logs)
}

// HandleUpdateLog overwrites the mutable fields of an existing log entry.
func (h *LogHandler) HandleUpdateLog(c *fiber.Ctx) error {
	logID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid log ID", err)
	}

	var log models.SystemLog
	if err := c.BodyParser(&log); err != nil {
		return respondBadRequest(c, "Invalid request body", err)
	}
	if err := models.Validate(log); err != nil {
		return respondBadRequest(c, "Invalid log", err)
	}

	updatedID, err := h.service.UpdateLog(c.Context(), logID, log)
	if err != nil {
		return respondError(c, "Could not update log", err)
	}
	return c.JSON(fiber.Map{"log_id": updatedID})
}

// HandleDeleteLog removes a log row entirely.
func (h *LogHandler) HandleDeleteLog(c *fiber.Ctx) error {
	logID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid log ID", err)
	}

	deletedID, err := h.service.DeleteLog(c.Context(), logID)
	if err != nil {
		return respondError(c, "Could not delete log", err)
	}
	return c.JSON(fiber.Map{"log_id": deletedID})
}

// HandleSoftDeleteLog raises the Deleted flag via the raw-SQL path.
func (h *LogHandler) HandleSoftDeleteLog(c *fiber.Ctx) error {
	logID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid log ID", err)
	}

	ok, err := h.service.SoftDeleteLog(c.Context(), logID)
	if err != nil {
		return respondError(c, "Could not soft-delete log", err)
	}
	return c.JSON(fiber.Map{"soft_deleted": ok})
}

// HandleLogExists reports whether a log with the given ID is present.
func (h *LogHandler) HandleLogExists(c *fiber.Ctx) error {
	logID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid log ID", err)
	}

	exists, err := h.service.LogExists(c.Context(), logID)
	if err != nil {
		return respondError(c, "Could not check log existence", err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// HandleCountUserLogs returns how many logs a user has submitted.
func (h *LogHandler) HandleCountUserLogs(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return respondBadRequest(c, "Invalid user ID", err)
	}

	count, err := h.service.CountUserLogs(c.Context(), userID)
	if err != nil {
		return respondError(c, "Could not count user logs", err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleGetLogStats returns the aggregate views over the log table.
func (h *LogHandler) HandleGetLogStats(c *fiber.Ctx) error {
	stats, err := h.service.GetLogStats(c.Context())
	if err != nil {
		return respondError(c, "Could not compute log stats", err)
	}
	return c.JSON(stats)
}

// HandleGetGroupedLogs returns per-user log counts.
func (h *LogHandler) HandleGetGroupedLogs(c *fiber.Ctx) error {
	grouped, err := h.service.GroupedLogs(c.Context())
	if err != nil {
		return respondError(c, "Could not group logs", err)
	}
	return c.JSON(grouped)
}

// HandleGetJoinedLogs returns each log joined with its submitting user.
func (h *LogHandler) HandleGetJoinedLogs(c *fiber.Ctx) error {
	joined, err := h.service.JoinedLogs(c.Context())
	if err != nil {
		return respondError(c, "Could not join logs", err)
	}
	return c.JSON(joined)
}

// HandleGetLogDescriptions returns the description projection.
func (h *LogHandler) HandleGetLogDescriptions(c *fiber.Ctx) error {
	descriptions, err := h.service.LogDescriptions(c.Context())
	if err != nil {
		return respondError(c, "Could not read log descriptions", err)
	}
	return c.JSON(descriptions)
}
