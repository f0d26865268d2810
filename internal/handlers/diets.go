package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
	"github.com/mkidawa/smAIcznego/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DietHandler handles diet lifecycle routes
type DietHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// CreateDiet handles POST /api/diets
// @Summary Create a diet
// @Description Create a draft diet bound to a completed generation
// @Tags Diets
// @Accept json
// @Produce json
// @Param body body services.CreateDietCommand true "Diet parameters"
// @Success 201 {object} services.CreateDietResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /diets [post]
func (h *DietHandler) CreateDiet(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	var cmd services.CreateDietCommand
	if err := c.BodyParser(&cmd); err != nil {
		return utils.ErrorResponse(c, types.NewValidationError("Invalid request body", nil))
	}
	if err := cmd.Validate(); err != nil {
		return respondError(c, h.Log, err)
	}

	diet, err := services.CreateDiet(h.DB, userID, cmd)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, services.CreateDietResponse{
		ID:           diet.ID,
		Status:       diet.Status,
		GenerationID: diet.GenerationID,
	}, fiber.StatusCreated)
}

// ListDiets handles GET /api/diets
// @Summary List diets
// @Description List the caller's non-archived diets, newest first
// @Tags Diets
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10) maximum(50)
// @Success 200 {object} services.PaginatedDietsResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /diets [get]
func (h *DietHandler) ListDiets(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 10)

	resp, err := services.ListDiets(h.DB, userID, page, perPage)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, resp, fiber.StatusOK)
}

// GetDiet handles GET /api/diets/:id
// @Summary Get a diet
// @Description Get an owned diet with meals and shopping list
// @Tags Diets
// @Accept json
// @Produce json
// @Param id path int true "Diet ID"
// @Success 200 {object} services.DietResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /diets/{id} [get]
func (h *DietHandler) GetDiet(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	dietID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}

	diet, err := services.GetDiet(h.DB, userID, dietID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, services.DietToResponse(diet), fiber.StatusOK)
}

// ArchiveDiet handles DELETE /api/diets/:id
// @Summary Archive a diet
// @Description Archive an owned diet; archived diets leave list views
// @Tags Diets
// @Accept json
// @Produce json
// @Param id path int true "Diet ID"
// @Success 200 {object} services.DietResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /diets/{id} [delete]
func (h *DietHandler) ArchiveDiet(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	dietID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}

	diet, err := services.ArchiveDiet(h.DB, userID, dietID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, services.DietToResponse(diet), fiber.StatusOK)
}
