// Package handlers contains the fiber HTTP handlers for the API surface.
package handlers

import (
	"paygo/internal/models"

	"github.com/gofiber/fiber/v2"
)

// mustClaims returns the claims the auth middleware stored on the context.
// Routes using it are always registered behind the middleware, so a missing
// value indicates a wiring bug and yields empty claims rather than a panic.
func mustClaims(c *fiber.Ctx) *models.UserClaims {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return &models.UserClaims{}
	}
	return claims
}

// parseIDParam reads a positive integer route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
