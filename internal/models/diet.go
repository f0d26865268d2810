package models

import (
	"time"

	"gorm.io/datatypes"
)

// Diet represents an approved, materializing meal plan. Exactly one diet may
// reference a generation; the unique index turns duplicate-approve races into
// conflict errors instead of duplicate rows.
type Diet struct {
	ID                uint64         `gorm:"primaryKey;autoIncrement"`
	UserID            string         `gorm:"type:char(36);not null;index:idx_diets_user_created"`
	GenerationID      uint64         `gorm:"not null;uniqueIndex"`
	NumberOfDays      int            `gorm:"not null"`
	CaloriesPerDay    int            `gorm:"not null"`
	PreferredCuisines datatypes.JSON `gorm:"type:json"`
	Status            DietStatus     `gorm:"not null;default:'draft'"`
	EndDate           time.Time      `gorm:"not null"`
	CreatedAt         time.Time      `gorm:"index:idx_diets_user_created"`
	Meals             []Meal         `gorm:"foreignKey:DietID"`
	ShoppingList      *ShoppingList  `gorm:"foreignKey:DietID"`
}

// Meal is one slot within a diet. Day is 0-based and the pair (day, meal_type)
// is unique per diet.
type Meal struct {
	ID             uint64   `gorm:"primaryKey;autoIncrement"`
	DietID         uint64   `gorm:"not null;index:idx_meals_slot,unique"`
	Day            int      `gorm:"not null;index:idx_meals_slot,unique"`
	MealType       MealType `gorm:"not null;index:idx_meals_slot,unique"`
	Instructions   string   `gorm:"type:text"`
	ApproxCalories *int
	CreatedAt      time.Time
}

// ShoppingList is the aggregated purchase list for a diet; at most one per diet.
type ShoppingList struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement"`
	DietID    uint64         `gorm:"not null;uniqueIndex"`
	Items     datatypes.JSON `gorm:"type:json;not null"`
	CreatedAt time.Time
}

// TableName overrides the table name for Diet
func (Diet) TableName() string {
	return "diets"
}

// TableName overrides the table name for Meal
func (Meal) TableName() string {
	return "meals"
}

// TableName overrides the table name for ShoppingList
func (ShoppingList) TableName() string {
	return "shopping_lists"
}
