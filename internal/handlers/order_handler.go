package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"orderhub/internal/models"
	"orderhub/internal/services"
)

// OrderHandler handles HTTP requests for order staging and migration.
type OrderHandler struct {
	service *services.OrderService
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/temp", h.HandleSaveTempOrder)
	orderRoutes.Get("/temp", h.HandleGetTempOrders)
	orderRoutes.Get("/temp/:id", h.HandleGetTempOrder)
	orderRoutes.Post("/migrate", h.HandleMigrateOrders)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

type saveTempOrderRequest struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
}

// HandleSaveTempOrder stages an order and its items in the cache and returns
// the assigned staging identifier.
func (h *OrderHandler) HandleSaveTempOrder(c *fiber.Ctx) error {
	var req saveTempOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "Invalid request body", err)
	}

	if req.Order.OrderDateTime.IsZero() {
		req.Order.OrderDateTime = time.Now()
	}
	if err := models.Validate(req.Order); err != nil {
		return respondBadRequest(c, "Invalid order", err)
	}
	for _, item := range req.Items {
		if err := models.Validate(item); err != nil {
			return respondBadRequest(c, "Invalid order item", err)
		}
	}

	orderID, err := h.service.SaveTempOrder(c.Context(), req.Order, req.Items)
	if err != nil {
		h.logger.Error("failed to stage order", zap.Error(err))
		return respondError(c, "Could not stage order", err)
	}

	return c.JSON(fiber.Map{"order_id": orderID})
}

// HandleGetTempOrder reads one staged order back from the cache. Only the
// order portion of the staged record is returned.
func (h *OrderHandler) HandleGetTempOrder(c *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return respondBadRequest(c, "Invalid order ID", err)
	}

	order, err := h.service.ReadTempOrder(c.Context(), orderID)
	if err != nil {
		return respondError(c, "Could not read staged order", err)
	}
	return c.JSON(order)
}

// HandleGetTempOrders enumerates all currently staged orders.
func (h *OrderHandler) HandleGetTempOrders(c *fiber.Ctx) error {
	staged, err := h.service.ReadTempOrders(c.Context())
	if err != nil {
		h.logger.Error("failed to enumerate staged orders", zap.Error(err))
		return respondError(c, "Could not read staged orders", err)
	}
	return c.JSON(staged)
}

// HandleMigrateOrders bulk-transfers all staged orders into the relational
// store and returns the newly assigned identifiers.
func (h *OrderHandler) HandleMigrateOrders(c *fiber.Ctx) error {
	newIDs, err := h.service.TransferTempOrders(c.Context())
	if err != nil {
		h.logger.Error("migration failed", zap.Error(err))
		return respondError(c, "Could not migrate staged orders", err)
	}
	return c.JSON(fiber.Map{"order_ids": newIDs})
}

// HandleGetOrders retrieves all migrated orders from the relational store.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrders(c.Context())
	if err != nil {
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single migrated order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return respondBadRequest(c, "Invalid order ID", err)
	}

	order, err := h.service.GetOrder(c.Context(), orderID)
	if err != nil {
		return respondError(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}
