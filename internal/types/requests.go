package types

// UpdateProfileRequest represents the request body for saving the profile
type UpdateProfileRequest struct {
	PantryText   string `json:"pantryText" binding:"max=10000"`
	UtensilsText string `json:"utensilsText" binding:"max=10000"`
}

// CreateSessionRequest represents the request body for a new recommendation session
type CreateSessionRequest struct {
	ExtraIngredientsText string      `json:"extraIngredientsText" binding:"max=5000"`
	Constraints          Constraints `json:"constraints"`
}

type GenerateRecommendationsRequest struct {
	SessionID string `json:"sessionId" binding:"required,uuid"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// SubmitFeedbackRequest represents a decision on one option
type SubmitFeedbackRequest struct {
	OptionItemID string   `json:"optionItemId" binding:"required,uuid"`
	Decision     Decision `json:"decision" binding:"required,oneof=ACCEPT REJECT NOT_NOW"`
	Reason       Reason   `json:"reason" binding:"omitempty,oneof=TOO_LONG TOO_COMPLEX DONT_LIKE_INGREDIENT NOT_IN_MOOD TOO_UNHEALTHY OTHER"`
	ReasonNote   string   `json:"reasonNote" binding:"max=1000"`
}

type SaveMealRequest struct {
	OptionItemID string `json:"optionItemId" binding:"required,uuid"`
}

// SwapDayRequest selects the zero-based day to regenerate
type SwapDayRequest struct {
	DayIndex *int `json:"dayIndex" binding:"required,min=0"`
}
