package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const optionJSON = `{
	"title": "Garlic Butter Pasta",
	"why": "Uses pantry pasta and garlic",
	"timeMins": 20,
	"difficulty": "Easy",
	"ingredientsUsed": {"pantry": ["pasta", "garlic", "butter"], "extra": []},
	"missingIngredients": [],
	"steps": ["Boil pasta", "Melt butter with garlic", "Toss"],
	"substitutions": ["Olive oil for butter"]
}`

func optionsJSON(n int) string {
	opts := make([]string, n)
	for i := range opts {
		opts[i] = optionJSON
	}
	return `{"options": [` + strings.Join(opts, ",") + `]}`
}

func violationFor(t *testing.T, err error, path string) Violation {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	for _, v := range ve.Violations {
		if v.Path == path {
			return v
		}
	}
	t.Fatalf("no violation for %q in %v", path, ve.Violations)
	return Violation{}
}

func TestDecodeRecommendationsRequiresExactlyThreeOptions(t *testing.T) {
	for _, n := range []int{0, 1, 2, 4, 5} {
		t.Run(fmt.Sprintf("%d options", n), func(t *testing.T) {
			_, err := DecodeRecommendations(optionsJSON(n))
			require.Error(t, err)
			v := violationFor(t, err, "options")
			assert.Equal(t, "len=3", v.Constraint)
		})
	}

	resp, err := DecodeRecommendations(optionsJSON(3))
	require.NoError(t, err)
	assert.Len(t, resp.Options, 3)
	assert.Equal(t, Easy, resp.Options[0].Difficulty)
}

func TestTwoOptionsRejectedWithLengthError(t *testing.T) {
	_, err := DecodeRecommendations(optionsJSON(2))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "RecommendationResponse", ve.Shape)
	require.Len(t, ve.Violations, 1)
	assert.Equal(t, "options", ve.Violations[0].Path)
	assert.Equal(t, "len=3", ve.Violations[0].Constraint)
	assert.Contains(t, ve.Violations[0].Message, "got 2")
}

func TestDecodeRecommendationsFieldViolations(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(map[string]any)
		path       string
		constraint string
	}{
		{"missing title", func(o map[string]any) { delete(o, "title") }, "options[1].title", "required"},
		{"bad difficulty", func(o map[string]any) { o["difficulty"] = "Expert" }, "options[1].difficulty", "oneof=Easy Medium Hard"},
		{"zero time", func(o map[string]any) { o["timeMins"] = 0 }, "options[1].timeMins", "gt=0"},
		{"missing steps", func(o map[string]any) { delete(o, "steps") }, "options[1].steps", "required"},
		{"null substitutions", func(o map[string]any) { o["substitutions"] = nil }, "options[1].substitutions", "required"},
		{"missing ingredients block", func(o map[string]any) { delete(o, "ingredientsUsed") }, "options[1].ingredientsUsed", "required"},
		{"missing pantry list", func(o map[string]any) { o["ingredientsUsed"] = map[string]any{"extra": []string{}} }, "options[1].ingredientsUsed.pantry", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Options []map[string]any `json:"options"`
			}
			require.NoError(t, json.Unmarshal([]byte(optionsJSON(3)), &doc))
			tt.mutate(doc.Options[1])
			raw, err := json.Marshal(doc)
			require.NoError(t, err)

			_, err = DecodeRecommendations(string(raw))
			v := violationFor(t, err, tt.path)
			assert.Equal(t, tt.constraint, v.Constraint)
		})
	}
}

func TestDecodeRejectsWrongTypesWithoutCoercion(t *testing.T) {
	raw := strings.Replace(optionsJSON(3), `"timeMins": 20`, `"timeMins": "20"`, 1)

	_, err := DecodeRecommendations(raw)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "type", ve.Violations[0].Constraint)
	assert.Contains(t, ve.Violations[0].Path, "timeMins")
}

func TestDecodeSyntaxErrorIsParseError(t *testing.T) {
	for _, raw := range []string{"not json at all", "", `{"options": [`} {
		_, err := DecodeRecommendations(raw)
		var pe *ParseError
		assert.ErrorAs(t, err, &pe, "input %q", raw)
	}
}

func TestEmptyListsArePermitted(t *testing.T) {
	resp, err := DecodeRecommendations(optionsJSON(3))
	require.NoError(t, err)
	assert.NotNil(t, resp.Options[0].MissingIngredients)
	assert.Empty(t, resp.Options[0].MissingIngredients)
	assert.Empty(t, resp.Options[0].IngredientsUsed.Extra)
}

func TestValidateIsIdempotent(t *testing.T) {
	resp, err := DecodeRecommendations(optionsJSON(3))
	require.NoError(t, err)

	before, err := json.Marshal(resp)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, Validate(resp))
	}

	after, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestRecommendationRoundTrip(t *testing.T) {
	resp, err := DecodeRecommendations(optionsJSON(3))
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	again, err := DecodeRecommendations(string(raw))
	require.NoError(t, err)
	assert.Equal(t, resp, again)
}

func TestDecodeWeeklyPlan(t *testing.T) {
	day := strings.TrimSuffix(strings.TrimSpace(optionJSON), "}") + `, "reuseNotes": "Uses leftover rice from Day 1"}`

	t.Run("valid with any day count", func(t *testing.T) {
		for _, n := range []int{1, 3, 7} {
			days := make([]string, n)
			for i := range days {
				days[i] = day
			}
			raw := `{"days": [` + strings.Join(days, ",") + `], "reuseStrategy": {"sharedIngredients": ["cilantro", "rice"], "leftoversStrategy": "Cook extra rice"}}`
			plan, err := DecodeWeeklyPlan(raw)
			require.NoError(t, err)
			assert.Len(t, plan.Days, n)
			assert.Equal(t, "Uses leftover rice from Day 1", plan.Days[0].ReuseNotes)
		}
	})

	t.Run("reuse strategy is mandatory", func(t *testing.T) {
		_, err := DecodeWeeklyPlan(`{"days": [` + day + `]}`)
		v := violationFor(t, err, "reuseStrategy")
		assert.Equal(t, "required", v.Constraint)
	})

	t.Run("leftovers strategy is mandatory", func(t *testing.T) {
		_, err := DecodeWeeklyPlan(`{"days": [` + day + `], "reuseStrategy": {"sharedIngredients": []}}`)
		violationFor(t, err, "reuseStrategy.leftoversStrategy")
	})

	t.Run("reuse notes optional", func(t *testing.T) {
		_, err := DecodePlanDay(optionJSON)
		require.NoError(t, err)
	})
}

func TestDecodeShoppingList(t *testing.T) {
	full := `{"produce": ["cilantro"], "pantry": [], "dairy": ["feta"], "protein": ["chicken thighs"], "spices": []}`
	list, err := DecodeShoppingList(full)
	require.NoError(t, err)
	assert.Equal(t, []string{"cilantro"}, list.Produce)
	assert.Empty(t, list.Pantry)

	for _, key := range []string{"produce", "pantry", "dairy", "protein", "spices"} {
		t.Run("missing "+key, func(t *testing.T) {
			var doc map[string]any
			require.NoError(t, json.Unmarshal([]byte(full), &doc))
			delete(doc, key)
			raw, _ := json.Marshal(doc)

			_, err := DecodeShoppingList(string(raw))
			violationFor(t, err, key)
		})
	}
}

func TestPlanDayIngredients(t *testing.T) {
	day := PlanDayRecipe{
		IngredientsUsed:    &IngredientsUsed{Pantry: []string{"rice"}, Extra: []string{"cilantro"}},
		MissingIngredients: []string{"lime"},
	}
	assert.Equal(t, []string{"cilantro", "lime"}, day.Ingredients())
}

func TestEmptyStringsArePermitted(t *testing.T) {
	raw := strings.ReplaceAll(optionsJSON(3), `"title": "Garlic Butter Pasta"`, `"title": ""`)
	raw = strings.ReplaceAll(raw, `"why": "Uses pantry pasta and garlic"`, `"why": ""`)

	resp, err := DecodeRecommendations(raw)
	require.NoError(t, err)
	assert.Empty(t, resp.Options[0].Title)
	assert.Empty(t, resp.Options[2].Why)

	plan, err := DecodeWeeklyPlan(`{"days": [` + optionJSON + `], "reuseStrategy": {"sharedIngredients": [], "leftoversStrategy": ""}}`)
	require.NoError(t, err)
	assert.Empty(t, plan.ReuseStrategy.LeftoversStrategy)

	_, err = DecodeWeeklyPlan(`{"days": [` + optionJSON + `], "reuseStrategy": {"sharedIngredients": [], "leftoversStrategy": null}}`)
	v := violationFor(t, err, "reuseStrategy.leftoversStrategy")
	assert.Equal(t, "required", v.Constraint)
}

func TestKeysMatchCaseSensitively(t *testing.T) {
	recommendations := func(raw string) error { _, err := DecodeRecommendations(raw); return err }
	shopping := func(raw string) error { _, err := DecodeShoppingList(raw); return err }

	tests := []struct {
		name   string
		decode func(string) error
		raw    string
		path   string
	}{
		{"root key", recommendations, strings.Replace(optionsJSON(3), `"options"`, `"OPTIONS"`, 1), "options"},
		{"nested key", recommendations, strings.ReplaceAll(optionsJSON(3), `"timeMins"`, `"TIMEMINS"`), "options[0].timeMins"},
		{"list key", shopping, `{"produce": [], "Pantry": [], "dairy": [], "protein": [], "spices": []}`, "pantry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := violationFor(t, tt.decode(tt.raw), tt.path)
			assert.Equal(t, "required", v.Constraint)
		})
	}
}

func TestFoldedDuplicateKeyDoesNotOverride(t *testing.T) {
	raw := strings.Replace(optionsJSON(3), `"title": "Garlic Butter Pasta"`, `"title": "Garlic Butter Pasta", "TITLE": "Other"`, 1)

	resp, err := DecodeRecommendations(raw)
	require.NoError(t, err)
	assert.Equal(t, "Garlic Butter Pasta", resp.Options[0].Title)
}

func TestRootMustBeObject(t *testing.T) {
	_, err := DecodeShoppingList(`["produce"]`)
	v := violationFor(t, err, "$")
	assert.Equal(t, "type", v.Constraint)
	assert.Equal(t, "expected object, got array", v.Message)
}
