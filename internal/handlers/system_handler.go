package handlers

import (
	"time"

	"hngpack/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RootMessage is returned by GET /.
const RootMessage = "HNG PACKAGING SOLUTION backend is running"

// SystemHandler serves liveness and diagnostic endpoints.
type SystemHandler struct {
	diagnostics *services.DiagnosticsService
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(diagnostics *services.DiagnosticsService) *SystemHandler {
	return &SystemHandler{diagnostics: diagnostics}
}

// RegisterRoutes registers /, /test and /health.
func (h *SystemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/test", h.HandleTest)
	router.Get("/health", h.HandleHealth)
}

func (h *SystemHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": RootMessage})
}

// HandleTest reports backend and database availability. It always answers 200.
func (h *SystemHandler) HandleTest(c *fiber.Ctx) error {
	return c.JSON(h.diagnostics.Diagnose(c.UserContext()))
}

func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	database := "unavailable"
	if h.diagnostics.DatabaseReady() {
		database = "connected"
	}
	return c.JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": database,
	})
}
