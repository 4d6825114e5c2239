package server

import (
	// Local Packages
	errors "swipepoint/errors"

	// External Packages
	"github.com/gofiber/fiber/v2"
)

// respondError maps error kinds to HTTP statuses. Validation outcomes
// of the gateway itself never reach here; they ride inside 200-success
// envelopes. Upstream failures surface as 500, matching how the geo
// proxy degrades.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch errors.KindOf(err) {
	case errors.Invalid:
		status = fiber.StatusBadRequest
	case errors.NotFound:
		status = fiber.StatusNotFound
	case errors.Conflict:
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": err.Error()})
}

// respondSuccess wraps the payload in the success envelope every
// gateway response uses.
func respondSuccess(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"status": "success", "data": data})
}
