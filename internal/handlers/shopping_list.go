package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
	"github.com/mkidawa/smAIcznego/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShoppingListHandler handles shopping list routes
type ShoppingListHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// CreateShoppingList handles POST /api/diets/:id/shopping-list
// @Summary Create a diet's shopping list
// @Description Attach the single shopping list to an owned diet
// @Tags ShoppingLists
// @Accept json
// @Produce json
// @Param id path int true "Diet ID"
// @Param body body services.CreateShoppingListCommand true "Shopping list items"
// @Success 201 {object} services.CreateShoppingListResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /diets/{id}/shopping-list [post]
func (h *ShoppingListHandler) CreateShoppingList(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	dietID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}

	var cmd services.CreateShoppingListCommand
	if err := c.BodyParser(&cmd); err != nil {
		return utils.ErrorResponse(c, types.NewValidationError("Invalid request body", nil))
	}

	list, err := services.CreateShoppingList(h.DB, userID, dietID, cmd)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, services.CreateShoppingListResponse{ShoppingListID: list.ID}, fiber.StatusCreated)
}

// GetShoppingList handles GET /api/diets/:id/shopping-list
// @Summary Get a diet's shopping list
// @Description Get the shopping list of an owned diet
// @Tags ShoppingLists
// @Accept json
// @Produce json
// @Param id path int true "Diet ID"
// @Success 200 {object} services.ShoppingListResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /diets/{id}/shopping-list [get]
func (h *ShoppingListHandler) GetShoppingList(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, types.NewUnauthorizedError(err.Error()))
	}

	dietID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, h.Log, err)
	}

	list, err := services.GetShoppingList(h.DB, userID, dietID)
	if err != nil {
		return respondError(c, h.Log, err)
	}
	return utils.SuccessResponse(c, shoppingListToResponse(list), fiber.StatusOK)
}

func shoppingListToResponse(list *models.ShoppingList) services.ShoppingListResponse {
	resp := services.ShoppingListResponse{
		ID:        list.ID,
		DietID:    list.DietID,
		CreatedAt: list.CreatedAt,
	}
	_ = json.Unmarshal(list.Items, &resp.Items)
	return resp
}
