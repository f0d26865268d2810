package models

import (
	"time"

	"gorm.io/datatypes"
)

// Generation represents one request to the external model. It is created in
// the pending state and mutated exactly once to completed or error.
type Generation struct {
	ID         uint64           `gorm:"primaryKey;autoIncrement"`
	UserID     string           `gorm:"type:char(36);not null;index"`
	SourceText string           `gorm:"type:text;not null"`
	Status     GenerationStatus `gorm:"not null;default:'pending'"`
	Metadata   datatypes.JSON   `gorm:"type:json"`
	CreatedAt  time.Time
}

// GenerationLog is an append-only event trail for a generation.
type GenerationLog struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	GenerationID uint64 `gorm:"not null;index"`
	EventType    string `gorm:"size:16;not null"`
	Message      string `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

// TableName overrides the table name for Generation
func (Generation) TableName() string {
	return "generations"
}

// TableName overrides the table name for GenerationLog
func (GenerationLog) TableName() string {
	return "generation_logs"
}
