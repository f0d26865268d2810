package models

// GenerationStatus is the lifecycle state of a generation record.
// pending is the only non-terminal state; completed and error are terminal.
type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "pending"
	GenerationCompleted GenerationStatus = "completed"
	GenerationError     GenerationStatus = "error"
)

// Terminal reports whether the status permits no further transition.
func (s GenerationStatus) Terminal() bool {
	return s == GenerationCompleted || s == GenerationError
}

// DietStatus advances strictly forward: draft -> meals_ready -> ready -> archived.
type DietStatus string

const (
	DietDraft      DietStatus = "draft"
	DietMealsReady DietStatus = "meals_ready"
	DietReady      DietStatus = "ready"
	DietArchived   DietStatus = "archived"
)

// MealType is the fixed set of meal slots within a day.
type MealType string

const (
	MealBreakfast       MealType = "breakfast"
	MealSecondBreakfast MealType = "second breakfast"
	MealLunch           MealType = "lunch"
	MealAfternoonSnack  MealType = "afternoon snack"
	MealDinner          MealType = "dinner"
)

// MealTypes lists every valid meal type.
var MealTypes = []MealType{
	MealBreakfast,
	MealSecondBreakfast,
	MealLunch,
	MealAfternoonSnack,
	MealDinner,
}

// Valid reports whether t is a member of the meal type enumeration.
func (t MealType) Valid() bool {
	for _, m := range MealTypes {
		if t == m {
			return true
		}
	}
	return false
}

// CuisineType is the closed enumeration of cuisine preferences.
type CuisineType string

const (
	CuisinePolish     CuisineType = "polish"
	CuisineItalian    CuisineType = "italian"
	CuisineIndian     CuisineType = "indian"
	CuisineAsian      CuisineType = "asian"
	CuisineVegan      CuisineType = "vegan"
	CuisineVegetarian CuisineType = "vegetarian"
	CuisineGlutenFree CuisineType = "gluten-free"
	CuisineKeto       CuisineType = "keto"
	CuisinePaleo      CuisineType = "paleo"
)

// CuisineTypes lists every valid cuisine.
var CuisineTypes = []CuisineType{
	CuisinePolish,
	CuisineItalian,
	CuisineIndian,
	CuisineAsian,
	CuisineVegan,
	CuisineVegetarian,
	CuisineGlutenFree,
	CuisineKeto,
	CuisinePaleo,
}

// Valid reports whether c is a member of the cuisine enumeration.
func (c CuisineType) Valid() bool {
	for _, k := range CuisineTypes {
		if c == k {
			return true
		}
	}
	return false
}

// Generation log event types.
const (
	GenerationEventRequest  = "request"
	GenerationEventResponse = "response"
	GenerationEventError    = "error"
)
