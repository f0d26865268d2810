package services_test

import (
	"testing"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/services"
	"github.com/mkidawa/smAIcznego/internal/types"
)

func TestCreateDietComputesEndDate(t *testing.T) {
	db := setupTestDB(t)
	generation := seedCompletedGeneration(t, db, testUserID, 5, 2000, 3)

	diet, err := services.CreateDiet(db, testUserID, services.CreateDietCommand{
		NumberOfDays:      5,
		CaloriesPerDay:    2000,
		PreferredCuisines: []models.CuisineType{models.CuisineItalian},
		GenerationID:      generation.ID,
	})
	if err != nil {
		t.Fatalf("CreateDiet failed: %v", err)
	}

	if diet.Status != models.DietDraft {
		t.Errorf("Expected draft status, got %s", diet.Status)
	}

	if want := diet.CreatedAt.AddDate(0, 0, 5); !diet.EndDate.Equal(want) {
		t.Errorf("Expected end_date %v (created_at + 5 days), got %v", want, diet.EndDate)
	}
}

func TestCreateDietOnePerGeneration(t *testing.T) {
	db := setupTestDB(t)
	generation := seedCompletedGeneration(t, db, testUserID, 3, 2000, 3)

	cmd := services.CreateDietCommand{
		NumberOfDays:   3,
		CaloriesPerDay: 2000,
		GenerationID:   generation.ID,
	}
	if _, err := services.CreateDiet(db, testUserID, cmd); err != nil {
		t.Fatalf("First CreateDiet failed: %v", err)
	}

	_, err := services.CreateDiet(db, testUserID, cmd)
	apiErr, ok := types.AsApiError(err)
	if !ok || apiErr.Code != types.CodeDietAlreadyExists {
		t.Fatalf("Expected DIET_ALREADY_EXISTS, got %v", err)
	}
}

func TestCreateDietGenerationNotFound(t *testing.T) {
	db := setupTestDB(t)

	// Another user's generation must be indistinguishable from a missing one.
	generation := seedCompletedGeneration(t, db, otherUserID, 3, 2000, 3)

	_, err := services.CreateDiet(db, testUserID, services.CreateDietCommand{
		NumberOfDays:   3,
		CaloriesPerDay: 2000,
		GenerationID:   generation.ID,
	})
	if !types.IsNotFound(err) {
		t.Fatalf("Expected not found, got %v", err)
	}
}

func TestListDietsExcludesArchived(t *testing.T) {
	db := setupTestDB(t)

	var dietIDs []uint64
	for i := 0; i < 3; i++ {
		generation := seedCompletedGeneration(t, db, testUserID, 2, 1800, 2)
		diet, err := services.CreateDiet(db, testUserID, services.CreateDietCommand{
			NumberOfDays:   2,
			CaloriesPerDay: 1800,
			GenerationID:   generation.ID,
		})
		if err != nil {
			t.Fatalf("CreateDiet failed: %v", err)
		}
		dietIDs = append(dietIDs, diet.ID)
	}

	if _, err := services.ArchiveDiet(db, testUserID, dietIDs[0]); err != nil {
		t.Fatalf("ArchiveDiet failed: %v", err)
	}

	resp, err := services.ListDiets(db, testUserID, 1, 10)
	if err != nil {
		t.Fatalf("ListDiets failed: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Expected total 2, got %d", resp.Total)
	}
	for _, diet := range resp.Data {
		if diet.ID == dietIDs[0] {
			t.Error("Archived diet should not appear in the listing")
		}
		if diet.Status == models.DietArchived {
			t.Error("Listing must not contain archived diets")
		}
	}

	// Other users see nothing.
	otherResp, err := services.ListDiets(db, otherUserID, 1, 10)
	if err != nil {
		t.Fatalf("ListDiets failed for other user: %v", err)
	}
	if otherResp.Total != 0 {
		t.Errorf("Expected empty listing for other user, got %d", otherResp.Total)
	}
}

func TestListDietsPagination(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 5; i++ {
		generation := seedCompletedGeneration(t, db, testUserID, 2, 1800, 2)
		if _, err := services.CreateDiet(db, testUserID, services.CreateDietCommand{
			NumberOfDays:   2,
			CaloriesPerDay: 1800,
			GenerationID:   generation.ID,
		}); err != nil {
			t.Fatalf("CreateDiet failed: %v", err)
		}
	}

	page1, err := services.ListDiets(db, testUserID, 1, 2)
	if err != nil {
		t.Fatalf("ListDiets failed: %v", err)
	}
	if len(page1.Data) != 2 || page1.Total != 5 {
		t.Errorf("Expected 2 of 5 on page 1, got %d of %d", len(page1.Data), page1.Total)
	}

	page3, err := services.ListDiets(db, testUserID, 3, 2)
	if err != nil {
		t.Fatalf("ListDiets failed: %v", err)
	}
	if len(page3.Data) != 1 {
		t.Errorf("Expected 1 on page 3, got %d", len(page3.Data))
	}
}

func TestArchiveDietIsOneWay(t *testing.T) {
	db := setupTestDB(t)
	generation := seedCompletedGeneration(t, db, testUserID, 2, 1800, 2)
	diet, err := services.CreateDiet(db, testUserID, services.CreateDietCommand{
		NumberOfDays:   2,
		CaloriesPerDay: 1800,
		GenerationID:   generation.ID,
	})
	if err != nil {
		t.Fatalf("CreateDiet failed: %v", err)
	}

	archived, err := services.ArchiveDiet(db, testUserID, diet.ID)
	if err != nil {
		t.Fatalf("ArchiveDiet failed: %v", err)
	}
	if archived.Status != models.DietArchived {
		t.Errorf("Expected archived status, got %s", archived.Status)
	}

	_, err = services.ArchiveDiet(db, testUserID, diet.ID)
	apiErr, ok := types.AsApiError(err)
	if !ok || apiErr.Code != types.CodeDietAlreadyArchived {
		t.Fatalf("Expected DIET_ALREADY_ARCHIVED, got %v", err)
	}
}

func TestGetDietOwnership(t *testing.T) {
	db := setupTestDB(t)
	generation := seedCompletedGeneration(t, db, testUserID, 2, 1800, 2)
	diet, err := services.CreateDiet(db, testUserID, services.CreateDietCommand{
		NumberOfDays:   2,
		CaloriesPerDay: 1800,
		GenerationID:   generation.ID,
	})
	if err != nil {
		t.Fatalf("CreateDiet failed: %v", err)
	}

	if _, err := services.GetDiet(db, otherUserID, diet.ID); !types.IsNotFound(err) {
		t.Fatalf("Expected not found for another user's diet, got %v", err)
	}
}
