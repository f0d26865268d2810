package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkidawa/smAIcznego/internal/config"
	"github.com/mkidawa/smAIcznego/internal/openrouter"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
	"github.com/mkidawa/smAIcznego/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GenerationHandler handles generation workflow routes
type GenerationHandler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Client *openrouter.Client
	Log    *zap.Logger
}

// CreateGeneration handles POST /api/generations
// @Summary Start a diet plan generation
// @Description Create a generation record and request a diet plan from the model
// @Tags Generations
// @Accept json
// @Produce json
// @Param body body services.CreateGenerationCommand true "Generation parameters"
// @Success 202 {object} services.CreateGenerationResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /generations [post]
func (h *GenerationHandler) CreateGeneration(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	var cmd services.CreateGenerationCommand
	if err := c.BodyParser(&cmd); err != nil {
		return utils.ErrorResponse(c, types.NewValidationError("Invalid request body", nil))
	}
	if err := cmd.Validate(); err != nil {
		return respondError(c, h.Log, err)
	}

	resp, err := services.CreateGeneration(c.Context(), h.DB, h.Client, h.Log, userID, cmd, h.Cfg.GenerationAsync)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, resp, fiber.StatusAccepted)
}

// GetGeneration handles GET /api/generations/:id
// @Summary Get a generation
// @Description Get a generation's status and, once completed, the plan preview
// @Tags Generations
// @Accept json
// @Produce json
// @Param id path int true "Generation ID"
// @Success 200 {object} services.GenerationResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /generations/{id} [get]
func (h *GenerationHandler) GetGeneration(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	generationID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}

	resp, err := services.GetGeneration(h.DB, userID, generationID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, resp, fiber.StatusOK)
}

// ApproveGeneration handles POST /api/generations/:id/approve
// @Summary Approve a completed generation
// @Description Promote a completed generation into a diet with meals and a shopping list
// @Tags Generations
// @Accept json
// @Produce json
// @Param id path int true "Generation ID"
// @Success 200 {object} services.DietResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /generations/{id}/approve [post]
func (h *GenerationHandler) ApproveGeneration(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	generationID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}

	diet, err := services.ApproveGeneration(h.DB, h.Log, userID, generationID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, services.DietToResponse(diet), fiber.StatusOK)
}
