package openrouter

import (
	"fmt"
	"strings"
)

// systemMessage pins the model to the two-key JSON contract with 0-based
// day and meal numbering.
const systemMessage = "You are an expert diet planner. Your task is to create personalized " +
	"meal plans together with shopping lists. You MUST respond ONLY with JSON containing an " +
	"object with exactly two keys: 'diet_plan' and 'shopping_list'. Do not add any text before " +
	"or after the JSON. The response must match the provided schema. Number meals " +
	"(meal_number_in_day) and days (day) starting from 0."

// BuildPrompt produces the user instruction sent to the model. It is a pure
// function of its inputs so the prompt contract can be asserted in tests.
func BuildPrompt(params PlanParams) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"Please generate a %d-day diet plan with %d kcal per day and %d meals per day. "+
			"Describe every meal precisely, naming each ingredient with seasoning and preparation "+
			"(not \"chicken with vegetables\" but \"chicken seasoned with salt and pepper, with carrots\" and so on). "+
			"The shopping list must contain the exact quantities needed to prepare all meals.",
		params.NumberOfDays, params.CaloriesPerDay, params.MealsPerDay)

	if len(params.Preferences) > 0 {
		names := make([]string, len(params.Preferences))
		for i, p := range params.Preferences {
			names[i] = string(p)
		}
		fmt.Fprintf(&b, " Preferences: %s.", strings.Join(names, ", "))
	}

	if params.DietaryPreference != "" {
		fmt.Fprintf(&b, " Dietary preference: %s.", params.DietaryPreference)
	}

	if len(params.Allergies) > 0 {
		fmt.Fprintf(&b, " Allergies: %s.", strings.Join(params.Allergies, ", "))
	}

	return b.String()
}

// responseSchema is the JSON schema the model output is constrained to.
func responseSchema() map[string]interface{} {
	ingredientSchema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":     map[string]interface{}{"type": "string"},
			"quantity": map[string]interface{}{"type": "string"},
		},
	}

	return map[string]interface{}{
		"type": "json_schema",
		"json_schema": map[string]interface{}{
			"name": "generation_response",
			"schema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"diet_plan": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"day": map[string]interface{}{"type": "number"},
								"meals": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"meal_number_in_day": map[string]interface{}{"type": "number"},
											"name":               map[string]interface{}{"type": "string"},
											"calories":           map[string]interface{}{"type": "number"},
											"meal_type": map[string]interface{}{
												"type": "string",
												"enum": []string{"breakfast", "second breakfast", "lunch", "afternoon snack", "dinner"},
											},
											"ingredients": map[string]interface{}{
												"type":  "array",
												"items": ingredientSchema,
											},
										},
									},
								},
							},
						},
					},
					"shopping_list": map[string]interface{}{
						"type":  "array",
						"items": ingredientSchema,
					},
				},
				"required": []string{"diet_plan", "shopping_list"},
			},
		},
	}
}
