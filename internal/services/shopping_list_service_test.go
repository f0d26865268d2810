package services_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
)

func TestCreateShoppingListAdvancesToReady(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 2)

	if _, err := services.CreateMeals(db, testUserID, diet.ID, services.BulkCreateMealsCommand{
		Meals: []services.CreateMealCommand{
			{Day: 0, MealType: models.MealBreakfast},
			{Day: 1, MealType: models.MealDinner},
		},
	}); err != nil {
		t.Fatalf("CreateMeals failed: %v", err)
	}

	list, err := services.CreateShoppingList(db, testUserID, diet.ID, services.CreateShoppingListCommand{
		Items: []string{"oats - 500g", "milk - 2l"},
	})
	if err != nil {
		t.Fatalf("CreateShoppingList failed: %v", err)
	}

	var items []string
	if err := json.Unmarshal(list.Items, &items); err != nil {
		t.Fatalf("Failed to parse stored items: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(items))
	}

	var reloaded models.Diet
	if err := db.First(&reloaded, diet.ID).Error; err != nil {
		t.Fatalf("Failed to reload diet: %v", err)
	}
	if reloaded.Status != models.DietReady {
		t.Errorf("Expected ready after meals and shopping list, got %s", reloaded.Status)
	}
}

func TestCreateShoppingListWithoutMealsStaysDraft(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 2)

	if _, err := services.CreateShoppingList(db, testUserID, diet.ID, services.CreateShoppingListCommand{
		Items: []string{"salt - 1 pinch"},
	}); err != nil {
		t.Fatalf("CreateShoppingList failed: %v", err)
	}

	var reloaded models.Diet
	if err := db.First(&reloaded, diet.ID).Error; err != nil {
		t.Fatalf("Failed to reload diet: %v", err)
	}
	if reloaded.Status != models.DietDraft {
		t.Errorf("A list without meals must not advance the diet, got %s", reloaded.Status)
	}
}

func TestCreateShoppingListOnePerDiet(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 2)

	cmd := services.CreateShoppingListCommand{Items: []string{"eggs - 12"}}
	if _, err := services.CreateShoppingList(db, testUserID, diet.ID, cmd); err != nil {
		t.Fatalf("First CreateShoppingList failed: %v", err)
	}

	_, err := services.CreateShoppingList(db, testUserID, diet.ID, cmd)
	apiErr, ok := types.AsApiError(err)
	if !ok || apiErr.Code != types.CodeShoppingListAlreadyExists {
		t.Fatalf("Expected SHOPPING_LIST_ALREADY_EXISTS, got %v", err)
	}
}

func TestShoppingListValidation(t *testing.T) {
	tooMany := make([]string, 101)
	for i := range tooMany {
		tooMany[i] = "item"
	}

	cases := []struct {
		name  string
		items []string
	}{
		{"empty", nil},
		{"too many", tooMany},
		{"blank item", []string{""}},
		{"oversized item", []string{strings.Repeat("x", 201)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := services.CreateShoppingListCommand{Items: tc.items}.Validate()
			apiErr, ok := types.AsApiError(err)
			if !ok || apiErr.Code != types.CodeValidationFailed {
				t.Fatalf("Expected VALIDATION_FAILED, got %v", err)
			}
		})
	}

	if err := (services.CreateShoppingListCommand{Items: []string{strings.Repeat("x", 200)}}).Validate(); err != nil {
		t.Errorf("200-character item should be accepted, got %v", err)
	}
}

func TestGetShoppingListOwnership(t *testing.T) {
	db := setupTestDB(t)
	diet := createDraftDiet(t, db, 2)

	if _, err := services.CreateShoppingList(db, testUserID, diet.ID, services.CreateShoppingListCommand{
		Items: []string{"bread - 1"},
	}); err != nil {
		t.Fatalf("CreateShoppingList failed: %v", err)
	}

	if _, err := services.GetShoppingList(db, otherUserID, diet.ID); !types.IsNotFound(err) {
		t.Fatalf("Expected not found for another user, got %v", err)
	}

	list, err := services.GetShoppingList(db, testUserID, diet.ID)
	if err != nil {
		t.Fatalf("GetShoppingList failed: %v", err)
	}
	if list.DietID != diet.ID {
		t.Errorf("Expected list for diet %d, got %d", diet.ID, list.DietID)
	}
}
