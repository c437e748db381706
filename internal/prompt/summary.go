package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/pageza/mealmind/backend/internal/schema"
)

// SummaryEvent is one feedback record with the context it was given in
type SummaryEvent struct {
	Title              string                 `json:"title"`
	Decision           string                 `json:"decision"`
	Reason             *string                `json:"reason"`
	ReasonNote         *string                `json:"reasonNote"`
	TimeMins           float64                `json:"timeMins"`
	Difficulty         string                 `json:"difficulty"`
	IngredientsUsed    schema.IngredientsUsed `json:"ingredientsUsed"`
	MissingIngredients []string               `json:"missingIngredients"`
	Constraints        map[string]any         `json:"constraints"`
}

// MaxSummaryLength bounds the stored preference summary, in characters.
const MaxSummaryLength = 1200

const summaryInstructions = `

Create a preference summary that includes:
1. Likes/dislikes (ingredients, cuisines, cooking styles)
2. Preferred cooking time range
3. Cuisines/dishes often accepted
4. Ingredients or meal types often rejected (with reasons if available)
5. Difficulty preferences
6. Any patterns in rejection reasons

IMPORTANT: Keep the summary under 1200 characters. Be specific and actionable - this will be used to personalize future recommendations.

Format as plain text paragraphs, not JSON.`

// Summary renders the single-turn summarization prompt.
func Summary(events []SummaryEvent) (string, error) {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode feedback history: %w", err)
	}
	return "Analyze this meal feedback history and create a concise user preference profile.\n\nFEEDBACK DATA:\n" +
		string(data) + summaryInstructions, nil
}

// ClipSummary enforces MaxSummaryLength by cutting to 1197 characters plus "...".
func ClipSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= MaxSummaryLength {
		return summary
	}
	return string(runes[:MaxSummaryLength-3]) + "..."
}
