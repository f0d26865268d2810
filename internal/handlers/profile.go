package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
	"github.com/mkidawa/smAIcznego/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileHandler handles profile routes
type ProfileHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// GetProfile handles GET /api/profile
// @Summary Get the caller's profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Success 200 {object} services.ProfileResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	profile, err := services.GetProfile(h.DB, userID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, profile, fiber.StatusOK)
}

// UpsertProfile handles PUT /api/profile
// @Summary Create or replace the caller's profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param body body services.ProfileCommand true "Profile data"
// @Success 200 {object} services.ProfileResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /profile [put]
func (h *ProfileHandler) UpsertProfile(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	var cmd services.ProfileCommand
	if err := c.BodyParser(&cmd); err != nil {
		return utils.ErrorResponse(c, types.NewValidationError("Invalid request body", nil))
	}

	profile, err := services.UpsertProfile(h.DB, userID, cmd)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, profile, fiber.StatusOK)
}
