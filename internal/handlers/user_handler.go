package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"orderhub/internal/models"
	"orderhub/internal/services"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service *services.UserService
	logger  *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleSaveUser)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/with-logs", h.HandleGetUsersWithLogs)
	userRoutes.Get("/cross-logs", h.HandleCrossUserLogs)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Get("/:id/logs", h.HandleGetUserWithLogs)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleSaveUser stores a new user and returns the assigned identifier.
func (h *UserHandler) HandleSaveUser(c *fiber.Ctx) error {
	var user models.AppUser
	if err := c.BodyParser(&user); err != nil {
		return respondBadRequest(c, "Invalid request body", err)
	}
	if err := models.Validate(user); err != nil {
		return respondBadRequest(c, "Invalid user", err)
	}

	userID, err := h.service.SaveUser(c.Context(), &user)
	if err != nil {
		h.logger.Error("failed to save user", zap.Error(err))
		return respondError(c, "Could not save user", err)
	}
	return c.JSON(fiber.Map{"app_user_id": userID})
}

// HandleGetUser retrieves a single user by ID.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid user ID", err)
	}

	user, err := h.service.GetUser(c.Context(), userID)
	if err != nil {
		return respondError(c, "Could not retrieve user", err)
	}
	return c.JSON(user)
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers(c.Context())
	if err != nil {
		return respondError(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleUpdateUser overwrites the mutable fields of an existing user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid user ID", err)
	}

	var user models.AppUser
	if err := c.BodyParser(&user); err != nil {
		return respondBadRequest(c, "Invalid request body", err)
	}
	if err := models.Validate(user); err != nil {
		return respondBadRequest(c, "Invalid user", err)
	}

	updatedID, err := h.service.UpdateUser(c.Context(), userID, user)
	if err != nil {
		return respondError(c, "Could not update user", err)
	}
	return c.JSON(fiber.Map{"app_user_id": updatedID})
}

// HandleDeleteUser soft-deletes a user.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid user ID", err)
	}

	deletedID, err := h.service.DeleteUser(c.Context(), userID)
	if err != nil {
		return respondError(c, "Could not delete user", err)
	}
	return c.JSON(fiber.Map{"app_user_id": deletedID})
}

// HandleGetUserWithLogs retrieves a user together with their system logs.
func (h *UserHandler) HandleGetUserWithLogs(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respondBadRequest(c, "Invalid user ID", err)
	}

	user, err := h.service.GetUserWithLogs(c.Context(), userID)
	if err != nil {
		return respondError(c, "Could not retrieve user with logs", err)
	}
	return c.JSON(user)
}

// HandleGetUsersWithLogs retrieves every user with their logs attached.
func (h *UserHandler) HandleGetUsersWithLogs(c *fiber.Ctx) error {
	users, err := h.service.GetUsersWithLogs(c.Context())
	if err != nil {
		return respondError(c, "Could not retrieve users with logs", err)
	}
	return c.JSON(users)
}

// HandleCrossUserLogs renders the cartesian pairing of users and log
// descriptions.
func (h *UserHandler) HandleCrossUserLogs(c *fiber.Ctx) error {
	pairs, err := h.service.CrossUserLogs(c.Context())
	if err != nil {
		return respondError(c, "Could not build cross user logs", err)
	}
	return c.JSON(pairs)
}
