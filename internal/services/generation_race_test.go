package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mkidawa/smAIcznego/internal/config"
	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/openrouter"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// A completion attempt that loses the guarded terminal transition must
// report the stored status and leave the event trail untouched.
func TestCompleteGenerationLostRace(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Generation{}, &models.GenerationLog{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	content := `{"diet_plan": [{"day": 0, "meals": [{"meal_number_in_day": 0, "name": "Oatmeal",
		"calories": 450, "meal_type": "breakfast", "ingredients": [{"name": "oats", "quantity": "50g"}]}]}],
		"shopping_list": [{"name": "oats", "quantity": "500g"}]}`
	body, err := json.Marshal(map[string]interface{}{
		"id":    "gen-1",
		"model": "test-model",
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	if err != nil {
		t.Fatalf("Failed to marshal model response: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer server.Close()

	cfg := &config.Config{
		OpenRouterURL:    server.URL,
		OpenRouterAPIKey: "test-key",
		OpenRouterModel:  "test-model",
	}
	client := openrouter.NewClient(cfg, zap.NewNop())
	client.RetryDelay = 2 * time.Millisecond

	// The row is already error-terminal when the completion lands.
	errMeta, _ := json.Marshal(map[string]string{"error": "model timed out"})
	generation := models.Generation{
		UserID:     "11111111-1111-1111-1111-111111111111",
		SourceText: "{}",
		Status:     models.GenerationError,
		Metadata:   datatypes.JSON(errMeta),
	}
	if err := db.Create(&generation).Error; err != nil {
		t.Fatalf("Failed to seed generation: %v", err)
	}

	status := completeGeneration(context.Background(), db, client, zap.NewNop(), generation.ID, openrouter.PlanParams{
		NumberOfDays:   1,
		CaloriesPerDay: 2000,
		MealsPerDay:    1,
	})
	if status != models.GenerationError {
		t.Errorf("Expected the stored error status, got %s", status)
	}

	var stored models.Generation
	if err := db.First(&stored, generation.ID).Error; err != nil {
		t.Fatalf("Failed to reload generation: %v", err)
	}
	if stored.Status != models.GenerationError {
		t.Errorf("Expected status to stay error, got %s", stored.Status)
	}
	if !strings.Contains(string(stored.Metadata), "model timed out") {
		t.Errorf("Expected metadata untouched, got %s", stored.Metadata)
	}

	var responseEvents int64
	if err := db.Model(&models.GenerationLog{}).
		Where("generation_id = ? AND event_type = ?", generation.ID, models.GenerationEventResponse).
		Count(&responseEvents).Error; err != nil {
		t.Fatalf("Failed to count log events: %v", err)
	}
	if responseEvents != 0 {
		t.Errorf("Expected no response event after a lost completion, got %d", responseEvents)
	}
}
