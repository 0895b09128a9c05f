package handlers

import "github.com/gofiber/fiber/v2"

// Health reports process liveness.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
