package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mkidawa/smAIcznego/internal/config"
	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/openrouter"
	"github.com/mkidawa/smAIcznego/internal/services"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testUserID  = "11111111-1111-1111-1111-111111111111"
	otherUserID = "22222222-2222-2222-2222-222222222222"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Generation{},
		&models.GenerationLog{},
		&models.Diet{},
		&models.Meal{},
		&models.ShoppingList{},
		&models.Profile{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// planContent builds the JSON document a cooperative model would place in
// the completion content: days x mealsPerDay meals plus a shopping list.
func planContent(t *testing.T, days, mealsPerDay int) string {
	t.Helper()

	mealTypes := models.MealTypes
	if mealsPerDay > len(mealTypes) {
		t.Fatalf("mealsPerDay %d exceeds available meal types", mealsPerDay)
	}

	plan := map[string]interface{}{}
	var dietPlan []map[string]interface{}
	for day := 0; day < days; day++ {
		var meals []map[string]interface{}
		for m := 0; m < mealsPerDay; m++ {
			meals = append(meals, map[string]interface{}{
				"meal_number_in_day": m,
				"name":               fmt.Sprintf("Meal %d-%d", day, m),
				"calories":           500 + m,
				"meal_type":          string(mealTypes[m]),
				"ingredients": []map[string]string{
					{"name": "oats", "quantity": "50g"},
					{"name": "milk", "quantity": "200ml"},
				},
			})
		}
		dietPlan = append(dietPlan, map[string]interface{}{
			"day":   day,
			"meals": meals,
		})
	}
	plan["diet_plan"] = dietPlan
	plan["shopping_list"] = []map[string]string{
		{"name": "oats", "quantity": "500g"},
		{"name": "milk", "quantity": "2l"},
	}

	content, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Failed to marshal plan content: %v", err)
	}
	return string(content)
}

// rawModelResponse wraps plan content into a chat-completions response body.
func rawModelResponse(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"id":    "gen-test",
		"model": "test-model",
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	if err != nil {
		t.Fatalf("Failed to marshal model response: %v", err)
	}
	return body
}

// newModelServer stands in for the chat-completions endpoint. The first
// `failures` completion requests return 500, the rest succeed with content.
func newModelServer(t *testing.T, failures int, content string) *httptest.Server {
	t.Helper()

	remaining := failures
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if remaining > 0 {
			remaining--
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(rawModelResponse(t, content))
	}))
	t.Cleanup(server.Close)
	return server
}

// newTestClient builds an OpenRouter client against a stub server with a
// short retry delay so failure paths finish quickly.
func newTestClient(serverURL string) *openrouter.Client {
	cfg := &config.Config{
		OpenRouterURL:    serverURL,
		OpenRouterAPIKey: "test-key",
		OpenRouterModel:  "test-model",
	}
	client := openrouter.NewClient(cfg, zap.NewNop())
	client.RetryDelay = 2 * time.Millisecond
	return client
}

// seedCompletedGeneration inserts a completed generation with a stored plan,
// as if a model call had already finished.
func seedCompletedGeneration(t *testing.T, db *gorm.DB, userID string, days, calories, mealsPerDay int) *models.Generation {
	t.Helper()

	sourceText, err := json.Marshal(services.CreateGenerationCommand{
		NumberOfDays:      days,
		CaloriesPerDay:    calories,
		MealsPerDay:       mealsPerDay,
		PreferredCuisines: []models.CuisineType{models.CuisinePolish},
	})
	if err != nil {
		t.Fatalf("Failed to marshal source text: %v", err)
	}

	generation := models.Generation{
		UserID:     userID,
		SourceText: string(sourceText),
		Status:     models.GenerationCompleted,
		Metadata:   datatypes.JSON(rawModelResponse(t, planContent(t, days, mealsPerDay))),
	}
	if err := db.Create(&generation).Error; err != nil {
		t.Fatalf("Failed to seed generation: %v", err)
	}
	return &generation
}

// createGeneration runs the full synchronous generation workflow against a
// stub model server and returns the created record's ID.
func createGeneration(t *testing.T, db *gorm.DB, days, calories, mealsPerDay int) uint64 {
	t.Helper()

	server := newModelServer(t, 0, planContent(t, days, mealsPerDay))
	client := newTestClient(server.URL)

	resp, err := services.CreateGeneration(context.Background(), db, client, zap.NewNop(), testUserID, services.CreateGenerationCommand{
		NumberOfDays:   days,
		CaloriesPerDay: calories,
		MealsPerDay:    mealsPerDay,
	}, false)
	if err != nil {
		t.Fatalf("CreateGeneration failed: %v", err)
	}
	if resp.Status != models.GenerationCompleted {
		t.Fatalf("Expected completed generation, got %s", resp.Status)
	}
	return resp.GenerationID
}
