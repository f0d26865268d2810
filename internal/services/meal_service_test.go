package services_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
	"gorm.io/gorm"
)

func createDraftDiet(t *testing.T, db *gorm.DB, days int) *models.Diet {
	t.Helper()
	generation := seedCompletedGeneration(t, db, testUserID, days, 2000, 3)
	diet, err := services.CreateDiet(db, testUserID, services.CreateDietCommand{
		NumberOfDays:   days,
		CaloriesPerDay: 2000,
		GenerationID:   generation.ID,
	})
	if err != nil {
		t.Fatalf("CreateDiet failed: %v", err)
	}
	return diet
}

func mealCount(t *testing.T, db *gorm.DB, dietID uint64) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Meal{}).Where("diet_id = ?", dietID).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count meals: %v", err)
	}
	return count
}

func TestCreateMealsAdvancesDraft(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 3)

	resp, err := services.CreateMeals(db, testUserID, diet.ID, services.BulkCreateMealsCommand{
		Meals: []services.CreateMealCommand{
			{Day: 0, MealType: models.MealBreakfast, Instructions: "Oatmeal"},
			{Day: 0, MealType: models.MealLunch},
			{Day: 2, MealType: models.MealDinner},
		},
	})
	if err != nil {
		t.Fatalf("CreateMeals failed: %v", err)
	}
	if len(resp.MealIDs) != 3 {
		t.Errorf("Expected 3 meal IDs, got %d", len(resp.MealIDs))
	}
	if resp.Status != models.DietMealsReady {
		t.Errorf("Expected meals_ready after first batch, got %s", resp.Status)
	}

	var reloaded models.Diet
	if err := db.First(&reloaded, diet.ID).Error; err != nil {
		t.Fatalf("Failed to reload diet: %v", err)
	}
	if reloaded.Status != models.DietMealsReady {
		t.Errorf("Expected persisted meals_ready, got %s", reloaded.Status)
	}
}

func TestCreateMealsDayOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 3)

	// Day equal to the diet length is one past the last valid index.
	_, err := services.CreateMeals(db, testUserID, diet.ID, services.BulkCreateMealsCommand{
		Meals: []services.CreateMealCommand{
			{Day: 0, MealType: models.MealBreakfast},
			{Day: 3, MealType: models.MealLunch},
			{Day: -1, MealType: models.MealDinner},
		},
	})
	apiErr, ok := types.AsApiError(err)
	if !ok || apiErr.Code != types.CodeValidationFailed {
		t.Fatalf("Expected VALIDATION_FAILED, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "-1") || !strings.Contains(apiErr.Message, "3") {
		t.Errorf("Expected both offending days in the message, got %q", apiErr.Message)
	}

	// The whole batch must be rejected, including the valid element.
	if count := mealCount(t, db, diet.ID); count != 0 {
		t.Errorf("Expected no meals written, got %d", count)
	}
}

func TestCreateMealsReportsAllConflicts(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 3)

	if _, err := services.CreateMeals(db, testUserID, diet.ID, services.BulkCreateMealsCommand{
		Meals: []services.CreateMealCommand{
			{Day: 0, MealType: models.MealBreakfast},
		},
	}); err != nil {
		t.Fatalf("Seeding meal failed: %v", err)
	}

	// One conflict against the DB, one duplicate inside the batch.
	_, err := services.CreateMeals(db, testUserID, diet.ID, services.BulkCreateMealsCommand{
		Meals: []services.CreateMealCommand{
			{Day: 0, MealType: models.MealBreakfast},
			{Day: 1, MealType: models.MealLunch},
			{Day: 1, MealType: models.MealLunch},
		},
	})
	apiErr, ok := types.AsApiError(err)
	if !ok || apiErr.Code != types.CodeValidationFailed {
		t.Fatalf("Expected VALIDATION_FAILED, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "(day 0, breakfast)") || !strings.Contains(apiErr.Message, "(day 1, lunch)") {
		t.Errorf("Expected every conflicting pair in the message, got %q", apiErr.Message)
	}

	if count := mealCount(t, db, diet.ID); count != 1 {
		t.Errorf("Expected only the seeded meal to remain, got %d", count)
	}
}

func TestCreateMealsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 2)

	_, err := services.CreateMeals(db, testUserID, diet.ID, services.BulkCreateMealsCommand{
		Meals: []services.CreateMealCommand{
			{Day: 0, MealType: "brunch"},
		},
	})
	apiErr, ok := types.AsApiError(err)
	if !ok || apiErr.Code != types.CodeValidationFailed {
		t.Fatalf("Expected VALIDATION_FAILED, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "brunch") {
		t.Errorf("Expected unknown type in message, got %q", apiErr.Message)
	}
}

func TestCreateMealsArchivedDiet(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 2)
	if _, err := services.ArchiveDiet(db, testUserID, diet.ID); err != nil {
		t.Fatalf("ArchiveDiet failed: %v", err)
	}

	_, err := services.CreateMeals(db, testUserID, diet.ID, services.BulkCreateMealsCommand{
		Meals: []services.CreateMealCommand{
			{Day: 0, MealType: models.MealBreakfast},
		},
	})
	apiErr, ok := types.AsApiError(err)
	if !ok || apiErr.Code != types.CodeDietAlreadyArchived {
		t.Fatalf("Expected DIET_ALREADY_ARCHIVED, got %v", err)
	}
}

func TestInvalidDays(t *testing.T) {
	meals := []services.CreateMealCommand{
		{Day: 0}, {Day: 6}, {Day: -2}, {Day: 6}, {Day: 4},
	}
	got := services.InvalidDays(5, meals)
	want := []int{-2, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InvalidDays(5) = %v, want %v", got, want)
	}

	if got := services.InvalidDays(7, []services.CreateMealCommand{{Day: 0}, {Day: 6}}); got != nil {
		t.Errorf("Expected no invalid days, got %v", got)
	}
}

func TestSlotConflicts(t *testing.T) {
	incoming := []services.CreateMealCommand{
		{Day: 0, MealType: models.MealBreakfast},
		{Day: 0, MealType: models.MealBreakfast},
		{Day: 1, MealType: models.MealDinner},
		{Day: 2, MealType: models.MealLunch},
	}
	existing := []services.MealSlot{
		{Day: 1, MealType: models.MealDinner},
	}

	got := services.SlotConflicts(incoming, existing)
	want := []services.MealSlot{
		{Day: 0, MealType: models.MealBreakfast},
		{Day: 1, MealType: models.MealDinner},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SlotConflicts = %v, want %v", got, want)
	}
}

func TestListMealsOrderedAndScoped(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 3)

	_, err := services.CreateMeals(db, testUserID, diet.ID, services.BulkCreateMealsCommand{
		Meals: []services.CreateMealCommand{
			{Day: 2, MealType: models.MealDinner},
			{Day: 0, MealType: models.MealBreakfast},
			{Day: 0, MealType: models.MealLunch},
		},
	})
	if err != nil {
		t.Fatalf("CreateMeals failed: %v", err)
	}

	meals, err := services.ListMeals(db, testUserID, diet.ID)
	if err != nil {
		t.Fatalf("ListMeals failed: %v", err)
	}
	if len(meals) != 3 {
		t.Fatalf("Expected 3 meals, got %d", len(meals))
	}
	if meals[0].Day != 0 || meals[2].Day != 2 {
		t.Errorf("Expected meals ordered by day, got days %d..%d", meals[0].Day, meals[2].Day)
	}

	if _, err := services.ListMeals(db, otherUserID, diet.ID); !types.IsNotFound(err) {
		t.Errorf("Expected not-found for another user, got %v", err)
	}
}
