package handlers

import (
	"hngpack/internal/models"
	"hngpack/internal/services"
	logx "hngpack/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
}

// HandleListProducts returns the stored products or the default catalog. It never fails.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.ListProducts(c.UserContext()))
}

// HandleCreateProduct validates and stores a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return bodyError(err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	id, err := h.service.CreateProduct(c.UserContext(), req.ToProduct())
	if err != nil {
		logx.Error().Err(err).Msg("failed to create product")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	logx.Info().Str("id", id).Msg("product created")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}
