package handlers

import "github.com/gofiber/fiber/v2"

// Health reports liveness and the model this service fronts.
func Health(modelID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"model":  modelID,
		})
	}
}
