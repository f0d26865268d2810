package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/openrouter"
	"github.com/mkidawa/smAIcznego/internal/types"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// asyncCompletionBudget bounds a detached model call; the terminal state is
// written to the generation row before the goroutine exits.
const asyncCompletionBudget = 5 * time.Minute

// CreateGenerationCommand carries the validated generation parameters.
type CreateGenerationCommand struct {
	NumberOfDays      int                  `json:"number_of_days"`
	CaloriesPerDay    int                  `json:"calories_per_day"`
	MealsPerDay       int                  `json:"meals_per_day"`
	PreferredCuisines []models.CuisineType `json:"preferred_cuisines"`
}

// Validate rejects out-of-range parameters before any side effect.
func (c CreateGenerationCommand) Validate() error {
	if c.NumberOfDays < 1 || c.NumberOfDays > 14 {
		return types.NewValidationError("number_of_days must be between 1 and 14", nil)
	}
	if c.CaloriesPerDay <= 0 {
		return types.NewValidationError("calories_per_day must be positive", nil)
	}
	if c.MealsPerDay < 1 {
		return types.NewValidationError("meals_per_day must be at least 1", nil)
	}
	for _, cuisine := range c.PreferredCuisines {
		if !cuisine.Valid() {
			return types.NewValidationError(fmt.Sprintf("unknown cuisine %q", cuisine), nil)
		}
	}
	return nil
}

// CreateGenerationResponse is returned by POST /api/generations.
type CreateGenerationResponse struct {
	GenerationID uint64                  `json:"generation_id"`
	Status       models.GenerationStatus `json:"status"`
}

// GenerationResponse is returned by GET /api/generations/:id.
type GenerationResponse struct {
	ID         uint64                        `json:"id"`
	Status     models.GenerationStatus       `json:"status"`
	CreatedAt  time.Time                     `json:"created_at"`
	SourceText *CreateGenerationCommand      `json:"source_text,omitempty"`
	Preview    *openrouter.DietPlanResponse  `json:"preview,omitempty"`
	Error      string                        `json:"error,omitempty"`
}

// CreateGeneration inserts a pending generation record and completes it
// against the external model. Once the insert succeeds the caller always has
// a record: downstream failures are captured onto that record's error state,
// never propagated in a way that orphans it.
//
// With async=false (the default) completion runs inline so failures are
// attributable to the triggering request; async=true restores the detached
// variant, which still always persists its terminal state.
func CreateGeneration(ctx context.Context, db *gorm.DB, client *openrouter.Client, log *zap.Logger, userID string, cmd CreateGenerationCommand, async bool) (*CreateGenerationResponse, error) {
	sourceText, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize generation params: %w", err)
	}

	generation := models.Generation{
		UserID:     userID,
		SourceText: string(sourceText),
		Status:     models.GenerationPending,
	}
	if err := db.Create(&generation).Error; err != nil {
		return nil, fmt.Errorf("failed to create generation record: %w", err)
	}

	logGenerationEvent(db, log, generation.ID, models.GenerationEventRequest, "generation record created")

	params := openrouter.PlanParams{
		NumberOfDays:   cmd.NumberOfDays,
		CaloriesPerDay: cmd.CaloriesPerDay,
		MealsPerDay:    cmd.MealsPerDay,
		Preferences:    cmd.PreferredCuisines,
	}

	// Fold in the user's dietary context when a profile exists.
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		params.DietaryPreference = profile.DietaryPreference
		if len(profile.Allergies) > 0 {
			var allergies []string
			if err := json.Unmarshal(profile.Allergies, &allergies); err == nil {
				params.Allergies = allergies
			}
		}
	}

	if async {
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), asyncCompletionBudget)
			defer cancel()
			completeGeneration(bgCtx, db, client, log, generation.ID, params)
		}()
		return &CreateGenerationResponse{GenerationID: generation.ID, Status: models.GenerationPending}, nil
	}

	status := completeGeneration(ctx, db, client, log, generation.ID, params)
	return &CreateGenerationResponse{GenerationID: generation.ID, Status: status}, nil
}

// completeGeneration performs the single terminal transition for a pending
// generation: completed with the raw model response, or error with the
// failure message. Every outcome is persisted.
func completeGeneration(ctx context.Context, db *gorm.DB, client *openrouter.Client, log *zap.Logger, generationID uint64, params openrouter.PlanParams) models.GenerationStatus {
	if err := client.Initialize(ctx); err != nil {
		failGeneration(db, log, generationID, fmt.Sprintf("OpenRouter initialization failed: %v", err))
		return models.GenerationError
	}

	resp, err := client.GenerateDietPlan(ctx, params)
	if err != nil {
		failGeneration(db, log, generationID, fmt.Sprintf("diet plan generation failed: %v", err))
		return models.GenerationError
	}

	result := db.Model(&models.Generation{}).
		Where("id = ? AND status = ?", generationID, models.GenerationPending).
		Updates(map[string]interface{}{
			"status":   models.GenerationCompleted,
			"metadata": datatypes.JSON(resp.Raw),
		})
	if result.Error != nil {
		log.Error("failed to mark generation completed",
			zap.Uint64("generation_id", generationID),
			zap.Error(result.Error))
		return models.GenerationError
	}
	if result.RowsAffected == 0 {
		// Already terminal; the first transition wins. Report the state that
		// actually stuck instead of the one this caller lost.
		log.Warn("generation already terminal, completion dropped",
			zap.Uint64("generation_id", generationID))
		var generation models.Generation
		if err := db.Select("status").First(&generation, generationID).Error; err != nil {
			log.Error("failed to read terminal generation status",
				zap.Uint64("generation_id", generationID),
				zap.Error(err))
			return models.GenerationError
		}
		return generation.Status
	}

	logGenerationEvent(db, log, generationID, models.GenerationEventResponse, "diet plan generated successfully")
	log.Info("generation completed", zap.Uint64("generation_id", generationID))
	return models.GenerationCompleted
}

// failGeneration records the error-terminal state with the failure message
// as metadata. A dropped background error would be a correctness bug, so
// this is the only exit path for failures.
func failGeneration(db *gorm.DB, log *zap.Logger, generationID uint64, message string) {
	metadata, _ := json.Marshal(map[string]string{"error": message})

	result := db.Model(&models.Generation{}).
		Where("id = ? AND status = ?", generationID, models.GenerationPending).
		Updates(map[string]interface{}{
			"status":   models.GenerationError,
			"metadata": datatypes.JSON(metadata),
		})
	if result.Error != nil {
		log.Error("failed to mark generation errored",
			zap.Uint64("generation_id", generationID),
			zap.Error(result.Error))
	}

	logGenerationEvent(db, log, generationID, models.GenerationEventError, message)
	log.Warn("generation failed",
		zap.Uint64("generation_id", generationID),
		zap.String("reason", message))
}

// GetGeneration fetches a generation for its owner. Absent and not-owned are
// indistinguishable in the result.
func GetGeneration(db *gorm.DB, userID string, generationID uint64) (*GenerationResponse, error) {
	var generation models.Generation
	err := db.Where("id = ? AND user_id = ?", generationID, userID).First(&generation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(types.CodeGenerationNotFound, "Generation with provided ID not found")
		}
		return nil, err
	}

	resp := &GenerationResponse{
		ID:        generation.ID,
		Status:    generation.Status,
		CreatedAt: generation.CreatedAt,
	}

	var source CreateGenerationCommand
	if err := json.Unmarshal([]byte(generation.SourceText), &source); err == nil {
		resp.SourceText = &source
	}

	switch generation.Status {
	case models.GenerationCompleted:
		preview, err := openrouter.ParsePlanFromMetadata(generation.Metadata)
		if err != nil {
			resp.Error = fmt.Sprintf("stored plan could not be parsed: %v", err)
		} else {
			resp.Preview = preview
		}
	case models.GenerationError:
		var failure struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(generation.Metadata, &failure); err == nil {
			resp.Error = failure.Error
		}
	}

	return resp, nil
}

// logGenerationEvent appends to the generation's event trail. Logging must
// not fail the workflow; a write error is only reported.
func logGenerationEvent(db *gorm.DB, log *zap.Logger, generationID uint64, eventType, message string) {
	entry := models.GenerationLog{
		GenerationID: generationID,
		EventType:    eventType,
		Message:      message,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Error("failed to write generation log",
			zap.Uint64("generation_id", generationID),
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
