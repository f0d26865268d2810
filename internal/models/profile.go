package models

import (
	"time"

	"gorm.io/datatypes"
)

// Profile holds user-level dietary context. The generation requestor reads
// allergies and the dietary preference to personalize the model prompt.
type Profile struct {
	UserID            string         `gorm:"type:char(36);primaryKey"`
	Age               *int
	Gender            string         `gorm:"size:8"`
	Weight            *float64
	Allergies         datatypes.JSON `gorm:"type:json"`
	DietaryPreference string         `gorm:"type:text"`
	TermsAccepted     bool           `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName overrides the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
