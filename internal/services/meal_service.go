package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateMealCommand is a single meal in a batch insert. Day is a zero-based
// index into the diet's duration.
type CreateMealCommand struct {
	Day            int             `json:"day"`
	MealType       models.MealType `json:"meal_type"`
	Instructions   string          `json:"instructions,omitempty"`
	ApproxCalories *int            `json:"approx_calories,omitempty"`
}

// BulkCreateMealsCommand is the body of POST /api/diets/:id/meals.
type BulkCreateMealsCommand struct {
	Meals []CreateMealCommand `json:"meals"`
}

// BulkCreateMealsResponse reports the created meal IDs and the diet's status
// after the insert.
type BulkCreateMealsResponse struct {
	MealIDs []uint64          `json:"meal_ids"`
	Status  models.DietStatus `json:"status"`
}

// MealSlot identifies one (day, meal_type) position within a diet.
type MealSlot struct {
	Day      int             `json:"day"`
	MealType models.MealType `json:"meal_type"`
}

func (s MealSlot) String() string {
	return fmt.Sprintf("(day %d, %s)", s.Day, s.MealType)
}

// InvalidDays returns the distinct out-of-range day indices in a batch. Valid
// days are [0, numberOfDays).
func InvalidDays(numberOfDays int, meals []CreateMealCommand) []int {
	seen := make(map[int]bool)
	var days []int
	for _, meal := range meals {
		if meal.Day < 0 || meal.Day >= numberOfDays {
			if !seen[meal.Day] {
				seen[meal.Day] = true
				days = append(days, meal.Day)
			}
		}
	}
	sort.Ints(days)
	return days
}

// SlotConflicts returns every slot that is duplicated within the incoming
// batch or already taken by an existing meal. All conflicts are reported, not
// just the first.
func SlotConflicts(incoming []CreateMealCommand, existing []MealSlot) []MealSlot {
	taken := make(map[MealSlot]bool, len(existing))
	for _, slot := range existing {
		taken[slot] = true
	}

	reported := make(map[MealSlot]bool)
	var conflicts []MealSlot
	seen := make(map[MealSlot]bool, len(incoming))
	for _, meal := range incoming {
		slot := MealSlot{Day: meal.Day, MealType: meal.MealType}
		if (taken[slot] || seen[slot]) && !reported[slot] {
			reported[slot] = true
			conflicts = append(conflicts, slot)
		}
		seen[slot] = true
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Day != conflicts[j].Day {
			return conflicts[i].Day < conflicts[j].Day
		}
		return conflicts[i].MealType < conflicts[j].MealType
	})
	return conflicts
}

func formatSlots(slots []MealSlot) string {
	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = slot.String()
	}
	return strings.Join(parts, ", ")
}

// CreateMeals validates and inserts a meal batch for an owned diet, then
// advances a draft diet to meals_ready. The insert is all or nothing: any
// guard failure rejects the whole batch before a single row is written.
func CreateMeals(db *gorm.DB, userID string, dietID uint64, cmd BulkCreateMealsCommand) (*BulkCreateMealsResponse, error) {
	if len(cmd.Meals) == 0 {
		return nil, types.NewValidationError("meals must not be empty", nil)
	}
	for i, meal := range cmd.Meals {
		if !meal.MealType.Valid() {
			return nil, types.NewValidationError(
				fmt.Sprintf("meals[%d]: unknown meal_type %q", i, meal.MealType), nil)
		}
		if meal.ApproxCalories != nil && *meal.ApproxCalories < 0 {
			return nil, types.NewValidationError(
				fmt.Sprintf("meals[%d]: approx_calories must not be negative", i), nil)
		}
	}

	var diet models.Diet
	err := db.Where("id = ? AND user_id = ?", dietID, userID).First(&diet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(types.CodeDietNotFound, "Diet with provided ID not found")
		}
		return nil, err
	}
	if diet.Status == models.DietArchived {
		return nil, types.NewConflictError(types.CodeDietAlreadyArchived, "Cannot add meals to an archived diet")
	}

	if days := InvalidDays(diet.NumberOfDays, cmd.Meals); len(days) > 0 {
		return nil, types.NewValidationError(
			fmt.Sprintf("day indices out of range [0, %d): %v", diet.NumberOfDays, days), nil)
	}

	var existing []models.Meal
	if err := db.Select("day", "meal_type").Where("diet_id = ?", dietID).Find(&existing).Error; err != nil {
		return nil, err
	}
	existingSlots := make([]MealSlot, len(existing))
	for i, meal := range existing {
		existingSlots[i] = MealSlot{Day: meal.Day, MealType: meal.MealType}
	}

	if conflicts := SlotConflicts(cmd.Meals, existingSlots); len(conflicts) > 0 {
		return nil, types.NewValidationError(
			fmt.Sprintf("duplicate meal slots: %s", formatSlots(conflicts)), nil)
	}

	rows := make([]models.Meal, len(cmd.Meals))
	for i, meal := range cmd.Meals {
		rows[i] = models.Meal{
			DietID:         dietID,
			Day:            meal.Day,
			MealType:       meal.MealType,
			Instructions:   meal.Instructions,
			ApproxCalories: meal.ApproxCalories,
		}
	}

	resp := &BulkCreateMealsResponse{Status: diet.Status}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		if diet.Status == models.DietDraft {
			result := tx.Model(&models.Diet{}).
				Where("id = ? AND status = ?", dietID, models.DietDraft).
				Update("status", models.DietMealsReady)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				resp.Status = models.DietMealsReady
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.MealIDs = make([]uint64, len(rows))
	for i, row := range rows {
		resp.MealIDs[i] = row.ID
	}
	return resp, nil
}

// ListMeals returns an owned diet's meals ordered by day and meal type.
func ListMeals(db *gorm.DB, userID string, dietID uint64) ([]MealResponse, error) {
	var count int64
	if err := db.Model(&models.Diet{}).
		Where("id = ? AND user_id = ?", dietID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, types.NewNotFoundError(types.CodeDietNotFound, "Diet with provided ID not found")
	}

	var rows []models.Meal
	if err := db.Where("diet_id = ?", dietID).
		Order("day ASC, meal_type ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	meals := make([]MealResponse, len(rows))
	for i, row := range rows {
		meals[i] = MealResponse{
			ID:             row.ID,
			Day:            row.Day,
			MealType:       row.MealType,
			Instructions:   row.Instructions,
			ApproxCalories: row.ApproxCalories,
			CreatedAt:      row.CreatedAt,
		}
	}
	return meals, nil
}

// advanceDietStatus performs a guarded forward transition. It is a no-op
// when the diet is no longer in the expected state.
func advanceDietStatus(tx *gorm.DB, dietID uint64, from, to models.DietStatus) error {
	return tx.Model(&models.Diet{}).
		Where("id = ? AND status = ?", dietID, from).
		Update("status", to).Error
}

// lockDiet fetches an owned diet under a row lock for use inside a
// transaction.
func lockDiet(tx *gorm.DB, userID string, dietID uint64) (*models.Diet, error) {
	var diet models.Diet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", dietID, userID).
		First(&diet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(types.CodeDietNotFound, "Diet with provided ID not found")
		}
		return nil, err
	}
	return &diet, nil
}
