package utils

import "github.com/gofiber/fiber/v2"

// JSON writes a success payload as-is; handlers shape their own envelopes
// ({"todos": [...]}, {"group": {...}} and so on).
func JSON(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(payload)
}

// Error writes the uniform failure body {"error": message}.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
