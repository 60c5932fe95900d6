package middleware

import (
	"time"

	logx "hngpack/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs every request once the response status is known.
// Errors returned down the chain are handed to the app error handler first.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := logx.Info()
		if status >= fiber.StatusInternalServerError {
			event = logx.Error()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Interface("request_id", c.Locals("requestid")).
			Msg("http request")
		return nil
	}
}
