package handlers

import (
	"github.com/adintl/catalog-api/internal/config"
	"github.com/adintl/catalog-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler handles liveness and admin ping routes
type HealthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// GetHealth handles GET /api/health
// @Summary Service health
// @Description Report database connectivity and image host configuration
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

// AdminPing handles GET /api/admin
// @Summary Admin ping
// @Description Confirm the bearer token carries the Administrator role
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin [get]
func (h *HealthHandler) AdminPing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "You are authorized as an administrator.",
	})
}
