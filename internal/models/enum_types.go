package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// enumColumnType maps an enum column to the native Postgres enum type and to a
// plain varchar on every other dialect. Mirrors the dialect mapping done for
// JSON columns by gorm.io/datatypes.
func enumColumnType(db *gorm.DB, pgType string, width string) string {
	if db.Dialector.Name() == "postgres" {
		return pgType
	}
	return "varchar(" + width + ")"
}

// GormDBDataType ensures generation status uses the Postgres enum type.
func (GenerationStatus) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return enumColumnType(db, "generation_status", "16")
}

// GormDBDataType ensures diet status uses the Postgres enum type.
func (DietStatus) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return enumColumnType(db, "diet_status", "16")
}

// GormDBDataType ensures meal type uses the Postgres enum type.
func (MealType) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return enumColumnType(db, "meal_type", "24")
}
