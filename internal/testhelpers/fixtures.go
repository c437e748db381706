package testhelpers

import (
	"encoding/json"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/schema"
)

// Option returns a well-formed recommendation option
func Option(title string) schema.Option {
	return schema.Option{
		Title:              title,
		Why:                "Uses what you have",
		TimeMins:           25,
		Difficulty:         schema.Easy,
		IngredientsUsed:    &schema.IngredientsUsed{Pantry: []string{"rice"}, Extra: []string{"chicken"}},
		MissingIngredients: []string{"lime"},
		Steps:              []string{"Cook the rice", "Sear the chicken"},
		Substitutions:      []string{},
	}
}

// PlanDay returns a well-formed day recipe
func PlanDay(title string, extra, missing []string) schema.PlanDayRecipe {
	if extra == nil {
		extra = []string{}
	}
	if missing == nil {
		missing = []string{}
	}
	return schema.PlanDayRecipe{
		Title:              title,
		Why:                "Quick weeknight dinner",
		TimeMins:           30,
		Difficulty:         schema.Medium,
		IngredientsUsed:    &schema.IngredientsUsed{Pantry: []string{"salt"}, Extra: extra},
		MissingIngredients: missing,
		Steps:              []string{"Prep", "Cook"},
		Substitutions:      []string{},
	}
}

// RecommendationJSON renders a valid recommendation response with one option per title
func RecommendationJSON(t *testing.T, titles ...string) string {
	t.Helper()
	options := make([]schema.Option, len(titles))
	for i, title := range titles {
		options[i] = Option(title)
	}
	return mustJSON(t, schema.RecommendationResponse{Options: options})
}

// WeeklyPlanJSON renders a valid plan response with the given number of days
func WeeklyPlanJSON(t *testing.T, days int) string {
	t.Helper()
	recipes := make([]schema.PlanDayRecipe, days)
	for i := range recipes {
		recipes[i] = PlanDay(fmt.Sprintf("Dinner %d", i+1), []string{"cilantro"}, []string{fmt.Sprintf("protein %d", i+1)})
	}
	return mustJSON(t, schema.WeeklyPlanResponse{
		Days: recipes,
		ReuseStrategy: &schema.ReuseStrategy{
			SharedIngredients: []string{"cilantro"},
			LeftoversStrategy: "Cook extra rice on day 1",
		},
	})
}

// PlanDayJSON renders a valid single day recipe
func PlanDayJSON(t *testing.T, title string) string {
	t.Helper()
	return mustJSON(t, PlanDay(title, []string{"basil"}, []string{"tofu"}))
}

// ShoppingListJSON renders a valid shopping list
func ShoppingListJSON(t *testing.T) string {
	t.Helper()
	return mustJSON(t, schema.ShoppingList{
		Produce: []string{"cilantro"},
		Pantry:  []string{},
		Dairy:   []string{},
		Protein: []string{"tofu"},
		Spices:  []string{},
	})
}

// SeedProfile stores the profile singleton
func SeedProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		Singleton:    models.SingletonKey,
		PantryText:   "rice\nbeans",
		UtensilsText: "pan",
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return profile
}

// SeedRecommendationSet stores a session with one set of options
func SeedRecommendationSet(t *testing.T, db *gorm.DB, titles ...string) *models.RecommendationSet {
	t.Helper()
	session := &models.Session{ExtraIngredientsText: "chicken", ConstraintsJSON: `{"timeMins":30}`}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	options := make([]schema.Option, len(titles))
	for i, title := range titles {
		options[i] = Option(title)
	}
	set := &models.RecommendationSet{
		SessionID:       session.ID,
		Model:           "test-model",
		PromptVersion:   "v2",
		RawResponseJSON: "{}",
		Options:         models.NewOptionItems(options),
	}
	if err := db.Create(set).Error; err != nil {
		t.Fatalf("failed to seed recommendation set: %v", err)
	}
	return set
}

// SeedPlan stores a plan with the given days in order
func SeedPlan(t *testing.T, db *gorm.DB, days ...schema.PlanDayRecipe) *models.Plan {
	t.Helper()
	plan := &models.Plan{
		ReuseStrategy: schema.ReuseStrategy{SharedIngredients: []string{}, LeftoversStrategy: "none"},
		Model:         "test-model",
		PromptVersion: "plan-v1",
	}
	plan.Inputs.Days = len(days)
	plan.Inputs.MaxCookTime = 30
	for i, d := range days {
		plan.Days = append(plan.Days, models.PlanDay{DayIndex: i, Recipe: d, RawResponseJSON: "{}"})
	}
	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}
	return plan
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	return string(data)
}
