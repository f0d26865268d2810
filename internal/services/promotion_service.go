package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/openrouter"
	"github.com/mkidawa/smAIcznego/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApproveGeneration promotes a completed generation into a persisted diet:
// the diet row, its meals, and its shopping list, ending in status ready.
// Each step is skipped when its output already exists, so a run interrupted
// after any step can be retried to convergence.
func ApproveGeneration(db *gorm.DB, log *zap.Logger, userID string, generationID uint64) (*models.Diet, error) {
	var generation models.Generation
	err := db.Where("id = ? AND user_id = ?", generationID, userID).First(&generation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(types.CodeGenerationNotFound, "Generation with provided ID not found")
		}
		return nil, err
	}
	if generation.Status != models.GenerationCompleted {
		return nil, types.NewConflictError(types.CodeGenerationNotCompleted,
			fmt.Sprintf("Generation is %s, only completed generations can be approved", generation.Status))
	}

	plan, err := openrouter.ParsePlanFromMetadata(generation.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored diet plan: %w", err)
	}

	var params CreateGenerationCommand
	if err := parseSourceText(generation.SourceText, &params); err != nil {
		return nil, err
	}

	diet, err := ensureDiet(db, userID, &generation, params)
	if err != nil {
		return nil, err
	}

	if err := ensureMeals(db, userID, diet, plan); err != nil {
		return nil, err
	}

	if err := ensureShoppingList(db, userID, diet, plan); err != nil {
		return nil, err
	}

	log.Info("generation approved",
		zap.Uint64("generation_id", generationID),
		zap.Uint64("diet_id", diet.ID))

	return GetDiet(db, userID, diet.ID)
}

func parseSourceText(sourceText string, params *CreateGenerationCommand) error {
	if err := json.Unmarshal([]byte(sourceText), params); err != nil {
		return fmt.Errorf("failed to parse generation source text: %w", err)
	}
	return nil
}

// ensureDiet reuses the diet already bound to the generation or creates it.
func ensureDiet(db *gorm.DB, userID string, generation *models.Generation, params CreateGenerationCommand) (*models.Diet, error) {
	var diet models.Diet
	err := db.Where("generation_id = ? AND user_id = ?", generation.ID, userID).First(&diet).Error
	if err == nil {
		return &diet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return CreateDiet(db, userID, CreateDietCommand{
		NumberOfDays:      params.NumberOfDays,
		CaloriesPerDay:    params.CaloriesPerDay,
		PreferredCuisines: params.PreferredCuisines,
		GenerationID:      generation.ID,
	})
}

// ensureMeals flattens the generated plan into the meal batch and advances
// the diet out of draft. Days use the plan's array position, not the model's
// self-reported numbering.
func ensureMeals(db *gorm.DB, userID string, diet *models.Diet, plan *openrouter.DietPlanResponse) error {
	var count int64
	if err := db.Model(&models.Meal{}).Where("diet_id = ?", diet.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		if diet.Status == models.DietDraft {
			if err := advanceDietStatus(db, diet.ID, models.DietDraft, models.DietMealsReady); err != nil {
				return err
			}
			diet.Status = models.DietMealsReady
		}
		return nil
	}

	var meals []CreateMealCommand
	for dayIndex, day := range plan.DietPlan {
		if dayIndex >= diet.NumberOfDays {
			break
		}
		for _, meal := range day.Meals {
			calories := int(meal.Calories)
			meals = append(meals, CreateMealCommand{
				Day:            dayIndex,
				MealType:       meal.MealType,
				Instructions:   mealInstructions(meal),
				ApproxCalories: &calories,
			})
		}
	}
	if len(meals) == 0 {
		return types.NewValidationError("generated plan contains no meals", nil)
	}

	resp, err := CreateMeals(db, userID, diet.ID, BulkCreateMealsCommand{Meals: meals})
	if err != nil {
		return err
	}
	diet.Status = resp.Status
	return nil
}

// ensureShoppingList persists the plan's shopping list and advances the diet
// to ready.
func ensureShoppingList(db *gorm.DB, userID string, diet *models.Diet, plan *openrouter.DietPlanResponse) error {
	var count int64
	if err := db.Model(&models.ShoppingList{}).Where("diet_id = ?", diet.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		if diet.Status == models.DietMealsReady {
			if err := advanceDietStatus(db, diet.ID, models.DietMealsReady, models.DietReady); err != nil {
				return err
			}
			diet.Status = models.DietReady
		}
		return nil
	}

	items := make([]string, 0, len(plan.ShoppingList))
	for _, ingredient := range plan.ShoppingList {
		items = append(items, fmt.Sprintf("%s - %s", ingredient.Name, ingredient.Quantity))
	}
	if len(items) == 0 {
		return types.NewValidationError("generated plan contains no shopping list items", nil)
	}

	if _, err := CreateShoppingList(db, userID, diet.ID, CreateShoppingListCommand{Items: items}); err != nil {
		return err
	}
	diet.Status = models.DietReady
	return nil
}

// mealInstructions renders a meal's name and ingredients as the stored
// preparation text, one "name quantity" line per ingredient.
func mealInstructions(meal openrouter.PlanMeal) string {
	var b strings.Builder
	b.WriteString(meal.Name)
	for _, ingredient := range meal.Ingredients {
		b.WriteString("\n")
		b.WriteString(ingredient.Name)
		if ingredient.Quantity != "" {
			b.WriteString(" ")
			b.WriteString(ingredient.Quantity)
		}
	}
	return b.String()
}
