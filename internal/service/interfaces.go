package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/types"
)

// IProfileService defines the interface for the profile singleton
type IProfileService interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, req *types.UpdateProfileRequest) (*models.Profile, error)
	RequireProfile(ctx context.Context) (*models.Profile, error)
}

// ISessionService defines the interface for recommendation sessions
type ISessionService interface {
	CreateSession(ctx context.Context, req *types.CreateSessionRequest) (*models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
}

// IRecommendationService defines the interface for single-meal generation
type IRecommendationService interface {
	Generate(ctx context.Context, sessionID uuid.UUID) (*models.RecommendationSet, error)
	Chat(ctx context.Context, message string) (*models.Session, error)
}

// IFeedbackService defines the interface for option feedback
type IFeedbackService interface {
	SubmitFeedback(ctx context.Context, req *types.SubmitFeedbackRequest) (*models.OptionFeedback, error)
}

// ISavedMealService defines the interface for saved meals
type ISavedMealService interface {
	ListSavedMeals(ctx context.Context) ([]models.SavedMeal, error)
	SaveMeal(ctx context.Context, optionItemID uuid.UUID) (*models.SavedMeal, error)
	DeleteSavedMeal(ctx context.Context, optionItemID uuid.UUID) error
}

// IPreferenceService defines the interface for the learned preference summary
type IPreferenceService interface {
	Summarize(ctx context.Context) (*SummaryResult, error)
	Current(ctx context.Context) (*models.PreferenceSummary, error)
}

// IPlanService defines the interface for multi-day plans
type IPlanService interface {
	CreatePlan(ctx context.Context, inputs types.PlanInputs) (*models.Plan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	ListPlans(ctx context.Context) ([]models.Plan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error
	SwapDay(ctx context.Context, planID uuid.UUID, dayIndex int) (*models.PlanDay, error)
	GetShoppingList(ctx context.Context, planID uuid.UUID) (*models.ShoppingList, error)
	GenerateShoppingList(ctx context.Context, planID uuid.UUID) (*models.ShoppingList, error)
}
