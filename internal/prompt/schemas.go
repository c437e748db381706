package prompt

// Schema texts shown to the provider in generation and repair prompts.
const (
	RecommendationSchema = `{
  "options": [
    {
      "title": "string - meal name",
      "why": "string - brief explanation",
      "timeMins": "number - cooking time in minutes",
      "difficulty": "Easy|Medium|Hard",
      "ingredientsUsed": {
        "pantry": ["array of strings - pantry items used"],
        "extra": ["array of strings - extra ingredients used"]
      },
      "missingIngredients": ["array of strings - items needed but not available"],
      "steps": ["array of strings - detailed cooking steps"],
      "substitutions": ["array of strings - possible substitutions"]
    }
  ]
}`

	WeeklyPlanSchema = `{
  "days": [
    {
      "title": "string - meal name",
      "why": "string - brief explanation of why this fits the plan",
      "timeMins": "number - cooking time in minutes",
      "difficulty": "Easy|Medium|Hard",
      "ingredientsUsed": {
        "pantry": ["array of strings - pantry items used"],
        "extra": ["array of strings - ingredients to buy"]
      },
      "missingIngredients": ["array of strings - items needed to buy"],
      "steps": ["array of strings - detailed cooking steps"],
      "substitutions": ["array of strings - possible substitutions"],
      "reuseNotes": "string - notes about ingredient reuse or leftovers strategy (optional)"
    }
  ],
  "reuseStrategy": {
    "sharedIngredients": ["array of strings - ingredients used across multiple days"],
    "leftoversStrategy": "string - overall leftovers strategy explanation"
  }
}`

	PlanDaySchema = `{
  "title": "string",
  "why": "string",
  "timeMins": "number",
  "difficulty": "Easy|Medium|Hard",
  "ingredientsUsed": { "pantry": ["..."], "extra": ["..."] },
  "missingIngredients": ["..."],
  "steps": ["..."],
  "substitutions": ["..."],
  "reuseNotes": "string (optional - explain if using shared ingredients)"
}`

	ShoppingListSchema = `{
  "produce": ["fresh vegetables, fruits, herbs"],
  "pantry": ["canned goods, grains, pasta, oils"],
  "dairy": ["milk, cheese, yogurt, eggs, butter"],
  "protein": ["meat, fish, poultry, tofu, legumes"],
  "spices": ["spices, seasonings, condiments"]
}`
)
