package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var validGenders = map[string]bool{"male": true, "female": true, "other": true}

// ProfileCommand is the body of PUT /api/profile.
type ProfileCommand struct {
	Age               *int     `json:"age,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`
	DietaryPreference string   `json:"dietary_preference,omitempty"`
	TermsAccepted     bool     `json:"terms_accepted"`
}

func (c ProfileCommand) Validate() error {
	if c.Age != nil && (*c.Age < 13 || *c.Age > 120) {
		return types.NewValidationError("age must be between 13 and 120", nil)
	}
	if c.Gender != "" && !validGenders[c.Gender] {
		return types.NewValidationError(fmt.Sprintf("unknown gender %q", c.Gender), nil)
	}
	if c.Weight != nil && (*c.Weight <= 0 || *c.Weight > 500) {
		return types.NewValidationError("weight must be between 0 and 500", nil)
	}
	for i, allergy := range c.Allergies {
		if allergy == "" || len(allergy) > 100 {
			return types.NewValidationError(
				fmt.Sprintf("allergies[%d] must be between 1 and 100 characters", i), nil)
		}
	}
	return nil
}

// ProfileResponse is the wire shape of a user profile.
type ProfileResponse struct {
	UserID            string   `json:"user_id"`
	Age               *int     `json:"age,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`
	DietaryPreference string   `json:"dietary_preference,omitempty"`
	TermsAccepted     bool     `json:"terms_accepted"`
}

// GetProfile fetches the caller's profile.
func GetProfile(db *gorm.DB, userID string) (*ProfileResponse, error) {
	var profile models.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(types.CodeProfileNotFound, "Profile not found")
		}
		return nil, err
	}
	return profileToResponse(&profile), nil
}

// UpsertProfile creates or fully replaces the caller's profile.
func UpsertProfile(db *gorm.DB, userID string, cmd ProfileCommand) (*ProfileResponse, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	allergies, err := json.Marshal(cmd.Allergies)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize allergies: %w", err)
	}

	profile := models.Profile{
		UserID:            userID,
		Age:               cmd.Age,
		Gender:            cmd.Gender,
		Weight:            cmd.Weight,
		Allergies:         datatypes.JSON(allergies),
		DietaryPreference: cmd.DietaryPreference,
		TermsAccepted:     cmd.TermsAccepted,
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"age", "gender", "weight", "allergies", "dietary_preference", "terms_accepted", "updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}
	return profileToResponse(&profile), nil
}

func profileToResponse(profile *models.Profile) *ProfileResponse {
	resp := &ProfileResponse{
		UserID:            profile.UserID,
		Age:               profile.Age,
		Gender:            profile.Gender,
		Weight:            profile.Weight,
		DietaryPreference: profile.DietaryPreference,
		TermsAccepted:     profile.TermsAccepted,
	}
	if len(profile.Allergies) > 0 {
		_ = json.Unmarshal(profile.Allergies, &resp.Allergies)
	}
	return resp
}
