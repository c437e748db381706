package prompt

import (
	"fmt"
	"strings"

	"github.com/pageza/mealmind/backend/internal/types"
)

// RecommendationInput is the context for a structured session
type RecommendationInput struct {
	PantryText           string
	UtensilsText         string
	ExtraIngredientsText string
	Constraints          types.Constraints
	RecentFeedback       []FeedbackEntry
	PreferenceSummary    string
}

// ChatInput is the context for a free-text request
type ChatInput struct {
	Message           string
	PantryText        string
	UtensilsText      string
	RecentFeedback    []FeedbackEntry
	PreferenceSummary string
}

const recommendationSystem = `You are a practical home cooking assistant. Generate exactly 3 meal recommendations based on the user's available ingredients and constraints.

COOKING REALISM RULES (STRICT):
1. Timing must be realistic - include prep time, actual cooking time, and any waiting/resting periods
2. Steps must be detailed and actionable - specify temperatures, quantities, visual cues ("until golden brown")
3. Never suggest techniques that don't match available equipment (no sous vide without immersion circulator)
4. Account for parallel tasks - if something simmers while you prep, mention it
5. Missing ingredients should be truly necessary - don't pad the list

PRIORITIZATION RULES:
1. Use ingredients the user already has (pantry + extra ingredients) - this is the main goal
2. Minimize missing ingredients - ideally 0-2 items max
3. Respect all dietary constraints strictly - no exceptions
4. Consider the available utensils when suggesting cooking methods

RESPONSE FORMAT:
You MUST respond with valid JSON. Do not include any text outside the JSON object.
` + RecommendationSchema + `

Provide EXACTLY 3 options. Each option must have all required fields. Steps should be detailed enough for a beginner to follow.`

// Recommendations renders the prompt for a structured session.
func Recommendations(in RecommendationInput) Prompt {
	var constraints []string
	for _, e := range in.Constraints.Entries() {
		constraints = append(constraints, fmt.Sprintf("- %s: %s", e.Key, e.Value))
	}

	var b strings.Builder
	b.WriteString("Generate 3 meal recommendations for me.\n\n")
	b.WriteString("PANTRY STAPLES (always available):\n")
	b.WriteString(orDefault(in.PantryText, notSpecified))
	b.WriteString("\n\nUTENSILS/EQUIPMENT (available):\n")
	b.WriteString(orDefault(in.UtensilsText, notSpecified))
	b.WriteString("\n\nEXTRA INGREDIENTS (available for this meal):\n")
	b.WriteString(orDefault(in.ExtraIngredientsText, noneSpecified))
	b.WriteString("\n\nCONSTRAINTS:\n")
	b.WriteString(orDefault(strings.Join(constraints, "\n"), noneSpecified))
	b.WriteString(preferenceBlock("USER PREFERENCE PROFILE (important - tailor recommendations to these learned preferences):", in.PreferenceSummary))
	b.WriteString(feedbackBlock(in.RecentFeedback))
	b.WriteString("\n\nRemember: Prioritize using what I have, minimize missing ingredients, be realistic about timing, and provide detailed, practical recipes.")

	return Prompt{System: recommendationSystem, User: b.String()}
}

// Chat renders the prompt for a free-text request. The message is passed through as the user turn.
func Chat(in ChatInput) Prompt {
	var b strings.Builder
	b.WriteString("You are a practical home cooking assistant. The user will describe what they want to eat in natural language. Based on their request and available ingredients, generate exactly 3 meal recommendations.\n\n")
	b.WriteString("AVAILABLE PANTRY STAPLES:\n")
	b.WriteString(orDefault(in.PantryText, notSpecified))
	b.WriteString("\n\nAVAILABLE UTENSILS/EQUIPMENT:\n")
	b.WriteString(orDefault(in.UtensilsText, notSpecified))
	b.WriteString(preferenceBlock("USER PREFERENCE PROFILE (tailor recommendations to these learned preferences):", in.PreferenceSummary))
	b.WriteString(feedbackBlock(in.RecentFeedback))
	b.WriteString(`

COOKING REALISM RULES (STRICT):
1. Timing must be realistic - include prep time, actual cooking time, and any waiting/resting periods
2. Steps must be detailed and actionable - specify temperatures, quantities, visual cues
3. Never suggest techniques that don't match available equipment
4. Account for parallel tasks - if something simmers while you prep, mention it

PRIORITIZATION RULES:
1. Prioritize using ingredients from the pantry staples
2. If the user mentions specific ingredients, use those as "extra" ingredients
3. Respect any constraints the user mentions (time, cuisine, diet, etc.)
4. Minimize missing ingredients - ideally 0-2 items max

RESPONSE FORMAT:
You MUST respond with valid JSON. Do not include any text outside the JSON object.
`)
	b.WriteString(RecommendationSchema)
	b.WriteString("\n\nProvide EXACTLY 3 options. Each option must have all required fields.")

	return Prompt{System: b.String(), User: in.Message}
}
