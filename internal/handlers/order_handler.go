package handlers

import (
	"hngpack/internal/models"
	"hngpack/internal/services"
	logx "hngpack/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// HandleCreateOrder stores any JSON object as an order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		return bodyError(err)
	}
	if order == nil {
		return &ValidationError{Issues: []ValidationIssue{{
			Type: "dict_type",
			Loc:  []string{"body"},
			Msg:  "Input should be a valid dictionary",
		}}}
	}

	id, err := h.service.CreateOrder(c.UserContext(), order)
	if err != nil {
		logx.Error().Err(err).Msg("failed to create order")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	logx.Info().Str("id", id).Msg("order placed")
	return c.JSON(models.OrderResponse{
		ID:      id,
		Message: models.OrderPlacedMessage,
	})
}
