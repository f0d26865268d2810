package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkidawa/smAIcznego/internal/config"
	"github.com/mkidawa/smAIcznego/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler handles the health probe route
type HealthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
	Log *zap.Logger
}

// GetHealth handles GET /health
// @Summary Health probe
// @Description Report connectivity to the database, the model endpoint, and the identity provider
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB, h.Log)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
