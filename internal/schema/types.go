// Package schema defines the structured shapes the meal provider must return
// and validates untrusted provider output against them.
//
// Every field without omitempty must be present under its exact key. Strings
// may be empty; value constraints live in the validate tags.
package schema

// Difficulty is the closed effort scale of a recipe
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// IngredientsUsed splits a recipe's ingredients by where they come from.
type IngredientsUsed struct {
	Pantry []string `json:"pantry" validate:"required"`
	Extra  []string `json:"extra" validate:"required"`
}

// Option is one meal suggestion in a recommendation response.
type Option struct {
	Title              string           `json:"title"`
	Why                string           `json:"why"`
	TimeMins           float64          `json:"timeMins" validate:"gt=0"`
	Difficulty         Difficulty       `json:"difficulty" validate:"oneof=Easy Medium Hard"`
	IngredientsUsed    *IngredientsUsed `json:"ingredientsUsed" validate:"required"`
	MissingIngredients []string         `json:"missingIngredients" validate:"required"`
	Steps              []string         `json:"steps" validate:"required"`
	Substitutions      []string         `json:"substitutions" validate:"required"`
}

// RecommendationResponse is the provider output for one session.
type RecommendationResponse struct {
	Options []Option `json:"options" validate:"required,len=3,dive"`
}

// PlanDayRecipe is the dinner for one day of a plan.
type PlanDayRecipe struct {
	Title              string           `json:"title"`
	Why                string           `json:"why"`
	TimeMins           float64          `json:"timeMins" validate:"gt=0"`
	Difficulty         Difficulty       `json:"difficulty" validate:"oneof=Easy Medium Hard"`
	IngredientsUsed    *IngredientsUsed `json:"ingredientsUsed" validate:"required"`
	MissingIngredients []string         `json:"missingIngredients" validate:"required"`
	Steps              []string         `json:"steps" validate:"required"`
	Substitutions      []string         `json:"substitutions" validate:"required"`
	ReuseNotes         string           `json:"reuseNotes,omitempty"`
}

// ReuseStrategy explains how a plan shares ingredients and leftovers.
type ReuseStrategy struct {
	SharedIngredients []string `json:"sharedIngredients" validate:"required"`
	LeftoversStrategy string   `json:"leftoversStrategy"`
}

// WeeklyPlanResponse is the provider output for a multi-day plan. The day count
// is checked by the caller against the request, not here.
type WeeklyPlanResponse struct {
	Days          []PlanDayRecipe `json:"days" validate:"required,dive"`
	ReuseStrategy *ReuseStrategy  `json:"reuseStrategy" validate:"required"`
}

// ShoppingList groups what needs buying into five fixed grocery sections.
type ShoppingList struct {
	Produce []string `json:"produce" validate:"required"`
	Pantry  []string `json:"pantry" validate:"required"`
	Dairy   []string `json:"dairy" validate:"required"`
	Protein []string `json:"protein" validate:"required"`
	Spices  []string `json:"spices" validate:"required"`
}

// Ingredients returns every ingredient the recipe needs beyond the pantry,
// extras first.
func (r PlanDayRecipe) Ingredients() []string {
	var out []string
	if r.IngredientsUsed != nil {
		out = append(out, r.IngredientsUsed.Extra...)
	}
	return append(out, r.MissingIngredients...)
}
