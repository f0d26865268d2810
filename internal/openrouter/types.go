package openrouter

import (
	"encoding/json"
	"fmt"

	"github.com/mkidawa/smAIcznego/internal/models"
	"github.com/mkidawa/smAIcznego/internal/types"
)

// PlanParams are the inputs to a diet plan generation.
type PlanParams struct {
	NumberOfDays      int
	CaloriesPerDay    int
	MealsPerDay       int
	Preferences       []models.CuisineType
	Allergies         []string
	DietaryPreference string
}

// Message is one entry of the chat-completions messages array.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the chat-completions payload.
type Request struct {
	Messages       []Message              `json:"messages"`
	Model          string                 `json:"model"`
	ResponseFormat map[string]interface{} `json:"response_format"`
	Temperature    float64                `json:"temperature"`
	TopP           float64                `json:"top_p"`
}

// Response is the raw chat-completions response. Only the fields the service
// reads are modeled; the full body is persisted as generation metadata.
type Response struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Raw     []byte   `json:"-"`
}

// Choice is one completion candidate.
type Choice struct {
	Message Message `json:"message"`
}

// Ingredient is a "name + quantity" pair, used both inside meals and on the
// shopping list.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// PlanMeal is one meal as emitted by the model.
type PlanMeal struct {
	MealNumberInDay types.FlexInt              `json:"meal_number_in_day"`
	Name            string                     `json:"name"`
	Calories        types.FlexInt              `json:"calories"`
	MealType        models.MealType            `json:"meal_type"`
	Ingredients     types.FlexList[Ingredient] `json:"ingredients"`
}

// PlanDay is one day of the generated plan. Day numbering is 0-based by
// contract, but consumers index by array position rather than trusting it.
type PlanDay struct {
	Day   types.FlexInt `json:"day"`
	Meals []PlanMeal    `json:"meals"`
}

// DietPlanResponse is the parsed preview: exactly two top-level keys.
type DietPlanResponse struct {
	DietPlan     []PlanDay    `json:"diet_plan"`
	ShoppingList []Ingredient `json:"shopping_list"`
}

// Plan parses the JSON document the model placed in the first choice's
// message content.
func (r *Response) Plan() (*DietPlanResponse, error) {
	if len(r.Choices) == 0 {
		return nil, fmt.Errorf("response has no choices")
	}
	content := r.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("response content is empty")
	}

	var plan DietPlanResponse
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse diet plan: %w", err)
	}
	return &plan, nil
}

// ParsePlanFromMetadata extracts the preview from a persisted raw response.
func ParsePlanFromMetadata(metadata []byte) (*DietPlanResponse, error) {
	var resp Response
	if err := json.Unmarshal(metadata, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse generation metadata: %w", err)
	}
	return resp.Plan()
}
