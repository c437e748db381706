package prompt

import (
	"fmt"
	"strings"

	"github.com/pageza/mealmind/backend/internal/schema"
	"github.com/pageza/mealmind/backend/internal/types"
)

// PlanInput is the context for a multi-day plan
type PlanInput struct {
	PantryText        string
	UtensilsText      string
	Inputs            types.PlanInputs
	RecentFeedback    []FeedbackEntry
	PreferenceSummary string
}

// SwapInput is the context for regenerating one day of a plan
type SwapInput struct {
	PantryText        string
	UtensilsText      string
	Inputs            types.PlanInputs
	DayIndex          int
	ExistingDays      []schema.PlanDayRecipe
	PreferenceSummary string
}

// ShoppingInput is the context for categorizing a plan's purchases
type ShoppingInput struct {
	PantryText string
	Days       []schema.PlanDayRecipe
}

const defaultShoppingPantry = "salt, pepper, olive oil, basic spices"

func dietLine(diet, none string) string {
	if strings.TrimSpace(diet) == "" {
		return none
	}
	return "Dietary requirement: " + diet
}

// WeeklyPlan renders the prompt for a multi-day dinner plan.
func WeeklyPlan(in PlanInput) Prompt {
	days := in.Inputs.Days
	maxTime := in.Inputs.MaxCookTime

	var cuisines []string
	if len(in.Inputs.IncludeCuisines) > 0 {
		cuisines = append(cuisines, "Include these cuisines: "+strings.Join(in.Inputs.IncludeCuisines, ", "))
	}
	if len(in.Inputs.ExcludeCuisines) > 0 {
		cuisines = append(cuisines, "Avoid these cuisines: "+strings.Join(in.Inputs.ExcludeCuisines, ", "))
	}

	system := fmt.Sprintf(`You are a practical home cooking assistant specializing in weekly meal planning. Generate a %d-day dinner plan that is efficient, practical, and minimizes food waste.

CRITICAL PLANNING RULES:
1. Maximum cooking time per meal: %d minutes
2. %s
3. %s

INGREDIENT REUSE REQUIREMENTS (MANDATORY):
1. At least 2 ingredients must be reused across multiple days (e.g., buy one bunch of cilantro, use in days 1 and 4)
2. Include at least 1 leftovers strategy (e.g., "cook extra rice on day 1 for fried rice on day 3")
3. Plan shopping efficiently - if you buy fresh herbs or vegetables, use them multiple times

COOKING REALISM RULES:
1. Timing must be realistic - each meal must be achievable within the max cook time
2. Steps must be detailed and actionable
3. Consider ingredient freshness - don't use fresh herbs on day 7 if bought for day 1
4. Vary the meals - don't repeat proteins on consecutive days

RESPONSE FORMAT:
You MUST respond with valid JSON matching this exact schema:
%s

The "days" array must have exactly %d meals. Each day must include reuseNotes if it uses ingredients from other days or creates leftovers for later use.`,
		days, maxTime,
		dietLine(in.Inputs.Diet, "No specific dietary restrictions"),
		orDefault(strings.Join(cuisines, ". "), "No cuisine restrictions"),
		WeeklyPlanSchema, days)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %d-day dinner plan for me.\n\n", days)
	b.WriteString("PANTRY STAPLES (always available - don't include in shopping):\n")
	b.WriteString(orDefault(in.PantryText, notSpecified))
	b.WriteString("\n\nUTENSILS/EQUIPMENT (available):\n")
	b.WriteString(orDefault(in.UtensilsText, notSpecified))
	b.WriteString(preferenceBlock("USER PREFERENCE PROFILE (important - tailor the plan to these learned preferences):", in.PreferenceSummary))
	b.WriteString(feedbackBlock(in.RecentFeedback))
	fmt.Fprintf(&b, `

Remember:
- Maximum %d minutes per meal
- Reuse at least 2 ingredients across the week
- Include at least 1 leftovers strategy
- Vary the proteins and cuisines
- Be realistic about timing`, maxTime)

	return Prompt{System: system, User: b.String()}
}

// SwapDay renders the prompt for replacing the recipe at DayIndex. Every
// existing title is listed so the replacement differs from all of them, while
// only the other days contribute to the shared shopping footprint.
func SwapDay(in SwapInput) Prompt {
	titles := make([]string, len(in.ExistingDays))
	meals := make([]string, len(in.ExistingDays))
	var footprint [][]string
	for i, d := range in.ExistingDays {
		titles[i] = d.Title
		meals[i] = fmt.Sprintf("Day %d: %s", i+1, d.Title)
		if i != in.DayIndex {
			footprint = append(footprint, d.Ingredients())
		}
	}
	shared := unique(footprint...)

	system := fmt.Sprintf(`You are a practical home cooking assistant. Generate 1 replacement dinner recipe for Day %d of a meal plan.

CONSTRAINTS:
- Maximum cooking time: %d minutes
- %s

EXISTING MEALS IN PLAN:
%s

INGREDIENTS ALREADY IN SHOPPING LIST (try to reuse these):
%s

RESPONSE FORMAT:
You MUST respond with valid JSON matching this schema:
%s

Generate something DIFFERENT from the existing meals. If possible, reuse ingredients from other days.`,
		in.DayIndex+1, in.Inputs.MaxCookTime,
		dietLine(in.Inputs.Diet, "No dietary restrictions"),
		strings.Join(meals, "\n"),
		orDefault(strings.Join(shared, ", "), "None yet"),
		PlanDaySchema)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a replacement dinner for Day %d.\n\n", in.DayIndex+1)
	b.WriteString("PANTRY STAPLES:\n")
	b.WriteString(orDefault(in.PantryText, notSpecified))
	b.WriteString("\n\nUTENSILS:\n")
	b.WriteString(orDefault(in.UtensilsText, notSpecified))
	b.WriteString(preferenceBlock("USER PREFERENCE PROFILE:", in.PreferenceSummary))
	b.WriteString("\n\nMake it different from: ")
	b.WriteString(strings.Join(titles, ", "))

	return Prompt{System: system, User: b.String()}
}

// NeededIngredients is every missing then extra ingredient across the plan, deduplicated.
func NeededIngredients(days []schema.PlanDayRecipe) []string {
	var missing, extra []string
	for _, d := range days {
		missing = append(missing, d.MissingIngredients...)
		if d.IngredientsUsed != nil {
			extra = append(extra, d.IngredientsUsed.Extra...)
		}
	}
	return unique(missing, extra)
}

// ShoppingList renders the prompt for categorizing a plan's purchases.
func ShoppingList(in ShoppingInput) Prompt {
	system := `You are a shopping list organizer. Categorize the following ingredients into the appropriate grocery sections. Remove any items that are likely already in a typical pantry (listed below).

PANTRY STAPLES (user already has these - DO NOT include in shopping list):
` + orDefault(in.PantryText, defaultShoppingPantry) + `

RESPONSE FORMAT:
You MUST respond with valid JSON matching this schema:
` + ShoppingListSchema + `

Each category should contain only items the user needs to buy. Consolidate duplicates (e.g., "cilantro" appearing twice becomes one entry). If an ingredient could go in multiple categories, pick the most common one.`

	user := "Organize these ingredients into a shopping list:\n\n" +
		strings.Join(NeededIngredients(in.Days), "\n") +
		"\n\nRemember: Don't include items that are in the pantry staples. Consolidate duplicates."

	return Prompt{System: system, User: user}
}
