package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// CreateDietCommand binds a new diet to a completed generation.
type CreateDietCommand struct {
	NumberOfDays      int                  `json:"number_of_days"`
	CaloriesPerDay    int                  `json:"calories_per_day"`
	PreferredCuisines []models.CuisineType `json:"preferred_cuisines"`
	GenerationID      uint64               `json:"generation_id"`
}

func (c CreateDietCommand) Validate() error {
	if c.NumberOfDays < 1 || c.NumberOfDays > 14 {
		return types.NewValidationError("number_of_days must be between 1 and 14", nil)
	}
	if c.CaloriesPerDay <= 0 {
		return types.NewValidationError("calories_per_day must be positive", nil)
	}
	if c.GenerationID == 0 {
		return types.NewValidationError("generation_id is required", nil)
	}
	for _, cuisine := range c.PreferredCuisines {
		if !cuisine.Valid() {
			return types.NewValidationError(fmt.Sprintf("unknown cuisine %q", cuisine), nil)
		}
	}
	return nil
}

// CreateDietResponse is returned by POST /api/diets.
type CreateDietResponse struct {
	ID           uint64            `json:"id"`
	Status       models.DietStatus `json:"status"`
	GenerationID uint64            `json:"generation_id"`
}

// MealResponse is the wire shape of a single meal.
type MealResponse struct {
	ID             uint64          `json:"id"`
	Day            int             `json:"day"`
	MealType       models.MealType `json:"meal_type"`
	Instructions   string          `json:"instructions,omitempty"`
	ApproxCalories *int            `json:"approx_calories,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ShoppingListResponse is the wire shape of a diet's shopping list.
type ShoppingListResponse struct {
	ID        uint64    `json:"id"`
	DietID    uint64    `json:"diet_id"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// DietResponse is the wire shape of a diet, with meals and shopping list
// populated on detail fetches.
type DietResponse struct {
	ID                uint64                `json:"id"`
	Status            models.DietStatus     `json:"status"`
	NumberOfDays      int                   `json:"number_of_days"`
	CaloriesPerDay    int                   `json:"calories_per_day"`
	PreferredCuisines []models.CuisineType  `json:"preferred_cuisines"`
	GenerationID      uint64                `json:"generation_id"`
	EndDate           time.Time             `json:"end_date"`
	CreatedAt         time.Time             `json:"created_at"`
	Meals             []MealResponse        `json:"meals,omitempty"`
	ShoppingList      *ShoppingListResponse `json:"shopping_list,omitempty"`
}

// PaginatedDietsResponse is returned by GET /api/diets.
type PaginatedDietsResponse struct {
	Data    []DietResponse `json:"data"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Total   int64          `json:"total"`
}

// CreateDiet creates a draft diet bound one-to-one to an owned generation.
// end_date is computed server side from the creation time and day count.
func CreateDiet(db *gorm.DB, userID string, cmd CreateDietCommand) (*models.Diet, error) {
	var generation models.Generation
	err := db.Where("id = ? AND user_id = ?", cmd.GenerationID, userID).First(&generation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(types.CodeGenerationNotFound, "Generation with provided ID not found")
		}
		return nil, err
	}

	var existing int64
	if err := db.Model(&models.Diet{}).Where("generation_id = ?", cmd.GenerationID).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, types.NewConflictError(types.CodeDietAlreadyExists, "A diet already exists for this generation")
	}

	cuisines, err := json.Marshal(cmd.PreferredCuisines)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize preferred cuisines: %w", err)
	}

	// A single clock read keeps end_date exactly created_at + number_of_days.
	now := time.Now()
	diet := models.Diet{
		UserID:            userID,
		GenerationID:      cmd.GenerationID,
		NumberOfDays:      cmd.NumberOfDays,
		CaloriesPerDay:    cmd.CaloriesPerDay,
		PreferredCuisines: datatypes.JSON(cuisines),
		Status:            models.DietDraft,
		CreatedAt:         now,
		EndDate:           now.AddDate(0, 0, cmd.NumberOfDays),
	}
	if err := db.Create(&diet).Error; err != nil {
		return nil, err
	}
	return &diet, nil
}

// GetDiet fetches an owned diet with meals ordered by day and slot, plus the
// shopping list when present.
func GetDiet(db *gorm.DB, userID string, dietID uint64) (*models.Diet, error) {
	var diet models.Diet
	err := db.Where("id = ? AND user_id = ?", dietID, userID).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("day ASC, meal_type ASC")
		}).
		Preload("ShoppingList").
		First(&diet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(types.CodeDietNotFound, "Diet with provided ID not found")
		}
		return nil, err
	}
	return &diet, nil
}

// ListDiets returns the user's non-archived diets, newest first.
func ListDiets(db *gorm.DB, userID string, page, perPage int) (*PaginatedDietsResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 10
	}

	scope := db.Model(&models.Diet{}).
		Where("user_id = ? AND status <> ?", userID, models.DietArchived)

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, err
	}

	var diets []models.Diet
	err := db.Clauses(hints.CommentBefore("select", "list_diets")).
		Where("user_id = ? AND status <> ?", userID, models.DietArchived).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&diets).Error
	if err != nil {
		return nil, err
	}

	data := make([]DietResponse, 0, len(diets))
	for i := range diets {
		data = append(data, DietToResponse(&diets[i]))
	}
	return &PaginatedDietsResponse{Data: data, Page: page, PerPage: perPage, Total: total}, nil
}

// ArchiveDiet transitions an owned diet to archived. Archiving is one way
// and idempotence is rejected: a second archive is a conflict.
func ArchiveDiet(db *gorm.DB, userID string, dietID uint64) (*models.Diet, error) {
	var diet models.Diet
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", dietID, userID).
			First(&diet).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError(types.CodeDietNotFound, "Diet with provided ID not found")
			}
			return err
		}
		if diet.Status == models.DietArchived {
			return types.NewConflictError(types.CodeDietAlreadyArchived, "Diet is already archived")
		}
		diet.Status = models.DietArchived
		return tx.Model(&diet).Update("status", models.DietArchived).Error
	})
	if err != nil {
		return nil, err
	}
	return &diet, nil
}

// DietToResponse converts a diet row to its wire shape, including preloaded
// associations when they are present.
func DietToResponse(diet *models.Diet) DietResponse {
	resp := DietResponse{
		ID:             diet.ID,
		Status:         diet.Status,
		NumberOfDays:   diet.NumberOfDays,
		CaloriesPerDay: diet.CaloriesPerDay,
		GenerationID:   diet.GenerationID,
		EndDate:        diet.EndDate,
		CreatedAt:      diet.CreatedAt,
	}
	if len(diet.PreferredCuisines) > 0 {
		_ = json.Unmarshal(diet.PreferredCuisines, &resp.PreferredCuisines)
	}
	for i := range diet.Meals {
		meal := &diet.Meals[i]
		resp.Meals = append(resp.Meals, MealResponse{
			ID:             meal.ID,
			Day:            meal.Day,
			MealType:       meal.MealType,
			Instructions:   meal.Instructions,
			ApproxCalories: meal.ApproxCalories,
			CreatedAt:      meal.CreatedAt,
		})
	}
	if diet.ShoppingList != nil {
		list := ShoppingListResponse{
			ID:        diet.ShoppingList.ID,
			DietID:    diet.ShoppingList.DietID,
			CreatedAt: diet.ShoppingList.CreatedAt,
		}
		_ = json.Unmarshal(diet.ShoppingList.Items, &list.Items)
		resp.ShoppingList = &list
	}
	return resp
}
