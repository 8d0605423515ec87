package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"orderhub/internal/cache"
	"orderhub/internal/repositories"
)

// respondError maps service errors onto HTTP statuses: missing records to
// 404, failed writes to 502, everything else to 500.
func respondError(c *fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, cache.ErrNotFound), errors.Is(err, repositories.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, repositories.ErrWriteFailed), errors.Is(err, cache.ErrUnavailable):
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// respondBadRequest is the shared shape for body-parsing and validation
// failures.
func respondBadRequest(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
