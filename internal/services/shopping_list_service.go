package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateShoppingListCommand is the body of POST /api/diets/:id/shopping-list.
type CreateShoppingListCommand struct {
	Items []string `json:"items"`
}

func (c CreateShoppingListCommand) Validate() error {
	if len(c.Items) < 1 || len(c.Items) > 100 {
		return types.NewValidationError("items must contain between 1 and 100 entries", nil)
	}
	for i, item := range c.Items {
		if len(item) < 1 || len(item) > 200 {
			return types.NewValidationError(
				fmt.Sprintf("items[%d] must be between 1 and 200 characters", i), nil)
		}
	}
	return nil
}

// CreateShoppingListResponse is returned by POST /api/diets/:id/shopping-list.
type CreateShoppingListResponse struct {
	ShoppingListID uint64 `json:"shopping_list_id"`
}

// CreateShoppingList attaches the single shopping list to an owned diet and
// advances meals_ready to ready when the diet already has meals.
func CreateShoppingList(db *gorm.DB, userID string, dietID uint64, cmd CreateShoppingListCommand) (*models.ShoppingList, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := json.Marshal(cmd.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize shopping list items: %w", err)
	}

	var list models.ShoppingList
	err = db.Transaction(func(tx *gorm.DB) error {
		diet, err := lockDiet(tx, userID, dietID)
		if err != nil {
			return err
		}
		if diet.Status == models.DietArchived {
			return types.NewConflictError(types.CodeDietAlreadyArchived, "Cannot add a shopping list to an archived diet")
		}

		var existing int64
		if err := tx.Model(&models.ShoppingList{}).Where("diet_id = ?", dietID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return types.NewConflictError(types.CodeShoppingListAlreadyExists, "A shopping list already exists for this diet")
		}

		list = models.ShoppingList{DietID: dietID, Items: datatypes.JSON(items)}
		if err := tx.Create(&list).Error; err != nil {
			return err
		}

		if diet.Status == models.DietMealsReady {
			var meals int64
			if err := tx.Model(&models.Meal{}).Where("diet_id = ?", dietID).Count(&meals).Error; err != nil {
				return err
			}
			if meals > 0 {
				return advanceDietStatus(tx, dietID, models.DietMealsReady, models.DietReady)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetShoppingList fetches the shopping list of an owned diet.
func GetShoppingList(db *gorm.DB, userID string, dietID uint64) (*models.ShoppingList, error) {
	var exists int64
	if err := db.Model(&models.Diet{}).Where("id = ? AND user_id = ?", dietID, userID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, types.NewNotFoundError(types.CodeDietNotFound, "Diet with provided ID not found")
	}

	var list models.ShoppingList
	err := db.Where("diet_id = ?", dietID).First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(types.CodeShoppingListNotFound, "Shopping list not found for this diet")
		}
		return nil, err
	}
	return &list, nil
}
