package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
	"github.com/mkidawa/smAIcznego/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MealHandler handles meal routes
type MealHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// CreateMeals handles POST /api/diets/:id/meals
// @Summary Add meals to a diet
// @Description Insert a meal batch; rejects the whole batch on any invalid day or duplicate slot
// @Tags Meals
// @Accept json
// @Produce json
// @Param id path int true "Diet ID"
// @Param body body services.BulkCreateMealsCommand true "Meal batch"
// @Success 201 {object} services.BulkCreateMealsResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /diets/{id}/meals [post]
func (h *MealHandler) CreateMeals(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	dietID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}

	var cmd services.BulkCreateMealsCommand
	if err := c.BodyParser(&cmd); err != nil {
		return utils.ErrorResponse(c, types.NewValidationError("Invalid request body", nil))
	}

	resp, err := services.CreateMeals(h.DB, userID, dietID, cmd)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, resp, fiber.StatusCreated)
}

// ListMeals handles GET /api/diets/:id/meals
// @Summary List a diet's meals
// @Description List meals for an owned diet ordered by day and meal type
// @Tags Meals
// @Accept json
// @Produce json
// @Param id path int true "Diet ID"
// @Success 200 {array} services.MealResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /diets/{id}/meals [get]
func (h *MealHandler) ListMeals(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	dietID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}

	meals, err := services.ListMeals(h.DB, userID, dietID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, meals, fiber.StatusOK)
}
