package services_test

import (
	"strings"
	"testing"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
	"go.uber.org/zap"
)

func TestApproveGeneration(t *testing.T) {
	db := setupTestDB(t)
	generation := seedCompletedGeneration(t, db, testUserID, 3, 2200, 2)

	diet, err := services.ApproveGeneration(db, zap.NewNop(), testUserID, generation.ID)
	if err != nil {
		t.Fatalf("ApproveGeneration failed: %v", err)
	}

	if diet.Status != models.DietReady {
		t.Errorf("Expected ready after approval, got %s", diet.Status)
	}
	if diet.GenerationID != generation.ID {
		t.Errorf("Expected diet bound to generation %d, got %d", generation.ID, diet.GenerationID)
	}
	if len(diet.Meals) != 6 {
		t.Fatalf("Expected 3 days x 2 meals = 6 meals, got %d", len(diet.Meals))
	}

	// Days come from array position and are zero based.
	seenDays := map[int]bool{}
	for _, meal := range diet.Meals {
		if meal.Day < 0 || meal.Day > 2 {
			t.Errorf("Meal day %d out of range [0, 2]", meal.Day)
		}
		seenDays[meal.Day] = true
		if meal.ApproxCalories == nil || *meal.ApproxCalories < 500 {
			t.Errorf("Expected approx_calories from the plan, got %v", meal.ApproxCalories)
		}
		if !strings.Contains(meal.Instructions, "oats 50g") {
			t.Errorf("Expected ingredient lines in instructions, got %q", meal.Instructions)
		}
	}
	if len(seenDays) != 3 {
		t.Errorf("Expected meals across 3 days, got %d", len(seenDays))
	}

	if diet.ShoppingList == nil {
		t.Fatal("Expected a shopping list after approval")
	}
	list, err := services.GetShoppingList(db, testUserID, diet.ID)
	if err != nil {
		t.Fatalf("GetShoppingList failed: %v", err)
	}
	if !strings.Contains(string(list.Items), "oats - 500g") {
		t.Errorf("Expected 'name - quantity' items, got %s", string(list.Items))
	}
}

func TestApproveGenerationIdempotent(t *testing.T) {
	db := setupTestDB(t)
	generation := seedCompletedGeneration(t, db, testUserID, 2, 2000, 2)

	first, err := services.ApproveGeneration(db, zap.NewNop(), testUserID, generation.ID)
	if err != nil {
		t.Fatalf("First ApproveGeneration failed: %v", err)
	}

	second, err := services.ApproveGeneration(db, zap.NewNop(), testUserID, generation.ID)
	if err != nil {
		t.Fatalf("Second ApproveGeneration failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("Expected the same diet on re-approval, got %d and %d", first.ID, second.ID)
	}
	if second.Status != models.DietReady {
		t.Errorf("Expected ready after re-approval, got %s", second.Status)
	}
	if count := mealCount(t, db, first.ID); count != 4 {
		t.Errorf("Expected no duplicate meals, got %d", count)
	}

	var lists int64
	db.Model(&models.ShoppingList{}).Where("diet_id = ?", first.ID).Count(&lists)
	if lists != 1 {
		t.Errorf("Expected exactly one shopping list, got %d", lists)
	}
}

func TestApproveGenerationNotCompleted(t *testing.T) {
	db := setupTestDB(t)

	generation := models.Generation{
		UserID:     testUserID,
		SourceText: "{}",
		Status:     models.GenerationPending,
	}
	if err := db.Create(&generation).Error; err != nil {
		t.Fatalf("Failed to seed generation: %v", err)
	}

	_, err := services.ApproveGeneration(db, zap.NewNop(), testUserID, generation.ID)
	apiErr, ok := types.AsApiError(err)
	if !ok || apiErr.Code != types.CodeGenerationNotCompleted {
		t.Fatalf("Expected GENERATION_NOT_COMPLETED, got %v", err)
	}
}

func TestApproveGenerationOwnership(t *testing.T) {
	db := setupTestDB(t)
	generation := seedCompletedGeneration(t, db, otherUserID, 2, 2000, 2)

	_, err := services.ApproveGeneration(db, zap.NewNop(), testUserID, generation.ID)
	if !types.IsNotFound(err) {
		t.Fatalf("Expected not found for another user's generation, got %v", err)
	}
}
