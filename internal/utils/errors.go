package utils

import (
	"auditstream/internal/errmsg"

	"github.com/gofiber/fiber/v3"
)

// StatusError renders se as the JSON error body every handler returns.
func StatusError(c fiber.Ctx, se errmsg.StatusError) error {
	return c.Status(se.StatusCode).JSON(map[string]string{
		"message": se.Message,
	})
}
