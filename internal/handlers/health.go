package handlers

import (
	"paygo/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports service liveness plus database and cache reachability.
func HealthCheck(c *fiber.Ctx) error {
	status := fiber.StatusOK
	dbStatus := "up"
	cacheStatus := "up"

	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	if repositories.CacheService == nil || repositories.CacheService.HealthCheck(c.Context()) != nil {
		cacheStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
