package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows every origin, method and header.
// Credentials stay disabled: fiber rejects them together with a wildcard origin.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		// Empty AllowHeaders echoes Access-Control-Request-Headers back.
		AllowHeaders: "",
	})
}
