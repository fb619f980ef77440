package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/database"
)

// Health reports whether the service can reach its database. Probes
// and the monitor CLI poll this endpoint.
func Health(c *fiber.Ctx) error {
	if err := database.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
