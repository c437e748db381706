package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/archive"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/prompt"
	"github.com/pageza/mealmind/backend/internal/schema"
	"github.com/pageza/mealmind/backend/internal/types"
)

const (
	planTemperature     = 0.7
	swapTemperature     = 0.8
	shoppingTemperature = 0.2

	// PlanListLimit bounds ListPlans
	PlanListLimit = 20
)

// PlanService generates and manages multi-day plans, single-day swaps and shopping lists
type PlanService struct {
	db          *gorm.DB
	gen         *Generator
	profiles    IProfileService
	preferences *PreferenceService
	archive     archive.Archiver
	logger      *zap.Logger
}

var _ IPlanService = (*PlanService)(nil)

func NewPlanService(
	db *gorm.DB,
	gen *Generator,
	profiles IProfileService,
	preferences *PreferenceService,
	archiver archive.Archiver,
	logger *zap.Logger,
) *PlanService {
	return &PlanService{
		db:          db,
		gen:         gen,
		profiles:    profiles,
		preferences: preferences,
		archive:     archiver,
		logger:      logger,
	}
}

// CreatePlan generates a plan with exactly inputs.Days days and stores it
func (s *PlanService) CreatePlan(ctx context.Context, inputs types.PlanInputs) (*models.Plan, error) {
	profile, err := s.profiles.RequireProfile(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := recentFeedbackEntries(ctx, s.db)
	if err != nil {
		return nil, err
	}

	p := prompt.WeeklyPlan(prompt.PlanInput{
		PantryText:        profile.PantryText,
		UtensilsText:      profile.UtensilsText,
		Inputs:            inputs,
		RecentFeedback:    feedback,
		PreferenceSummary: s.preferences.summaryText(ctx),
	})

	result, err := runTask(ctx, s.gen, task[*schema.WeeklyPlanResponse]{
		kind:        KindWeeklyPlan,
		model:       s.gen.CapableModel(),
		temperature: planTemperature,
		prompt:      p,
		decode:      decodePlanWithDays(inputs.Days),
		repair:      prompt.PlanRepairTarget(inputs.Days),
	})
	if err != nil {
		return nil, err
	}

	plan := &models.Plan{
		Inputs:        inputs,
		ReuseStrategy: *result.value.ReuseStrategy,
		Model:         s.gen.CapableModel(),
		PromptVersion: prompt.VersionPlan,
		Days:          make([]models.PlanDay, len(result.value.Days)),
	}
	for i, recipe := range result.value.Days {
		plan.Days[i] = models.PlanDay{DayIndex: i, Recipe: recipe, RawResponseJSON: result.raw}
	}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	s.archive.Store(ctx, archive.KindPlan, plan.ID.String(), result.raw)

	s.logger.Info("plan generated",
		zap.String("plan_id", plan.ID.String()),
		zap.Int("days", inputs.Days),
		zap.Bool("repaired", result.repaired))
	return plan, nil
}

// decodePlanWithDays validates a plan and then the requested day count. The
// schema itself does not know the count.
func decodePlanWithDays(days int) func(string) (*schema.WeeklyPlanResponse, error) {
	return func(raw string) (*schema.WeeklyPlanResponse, error) {
		plan, err := schema.DecodeWeeklyPlan(raw)
		if err != nil {
			return nil, err
		}
		if len(plan.Days) != days {
			return nil, &schema.ValidationError{
				Shape: "WeeklyPlanResponse",
				Violations: []schema.Violation{{
					Path:       "days",
					Constraint: fmt.Sprintf("len=%d", days),
					Message:    fmt.Sprintf("must contain exactly %d days, got %d", days, len(plan.Days)),
				}},
			}
		}
		return plan, nil
	}
}

func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	err := withPlanTree(s.db.WithContext(ctx)).First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Plan")
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &plan, nil
}

// ListPlans returns the newest plans first
func (s *PlanService) ListPlans(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := withPlanTree(s.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(PlanListLimit).
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// DeletePlan removes the plan with its days and shopping list
func (s *PlanService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&models.ShoppingList{}).Error; err != nil {
			return fmt.Errorf("failed to delete shopping list: %w", err)
		}
		if err := tx.Where("plan_id = ?", id).Delete(&models.PlanDay{}).Error; err != nil {
			return fmt.Errorf("failed to delete plan days: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.Plan{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete plan: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("Plan")
		}
		return nil
	})
}

// SwapDay regenerates the recipe at dayIndex and drops the plan's shopping list.
func (s *PlanService) SwapDay(ctx context.Context, planID uuid.UUID, dayIndex int) (*models.PlanDay, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if dayIndex < 0 || dayIndex >= len(plan.Days) {
		return nil, apperr.New(apperr.CodeInvalidInput, "day index out of range",
			fmt.Sprintf("dayIndex must be between 0 and %d", len(plan.Days)-1))
	}
	profile, err := s.profiles.RequireProfile(ctx)
	if err != nil {
		return nil, err
	}

	p := prompt.SwapDay(prompt.SwapInput{
		PantryText:        profile.PantryText,
		UtensilsText:      profile.UtensilsText,
		Inputs:            plan.Inputs,
		DayIndex:          dayIndex,
		ExistingDays:      plan.Recipes(),
		PreferenceSummary: s.preferences.summaryText(ctx),
	})

	result, err := runTask(ctx, s.gen, task[*schema.PlanDayRecipe]{
		kind:        KindPlanDay,
		model:       s.gen.CapableModel(),
		temperature: swapTemperature,
		prompt:      p,
		decode:      schema.DecodePlanDay,
		repair:      prompt.RepairTarget{Schema: prompt.PlanDaySchema},
	})
	if err != nil {
		return nil, err
	}

	day := plan.Days[dayIndex]
	day.Recipe = *result.value
	day.RawResponseJSON = result.raw

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&day).Select("recipe_json", "raw_response_json", "updated_at").Updates(&day).Error; err != nil {
			return err
		}
		return tx.Where("plan_id = ?", planID).Delete(&models.ShoppingList{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save swapped day: %w", err)
	}
	s.archive.Store(ctx, archive.KindPlanDay, day.ID.String(), result.raw)

	s.logger.Info("plan day swapped",
		zap.String("plan_id", planID.String()),
		zap.Int("day_index", dayIndex),
		zap.Bool("repaired", result.repaired))
	return &day, nil
}

func (s *PlanService) GetShoppingList(ctx context.Context, planID uuid.UUID) (*models.ShoppingList, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.ShoppingList == nil {
		return nil, apperr.New(apperr.CodeNotFound, "Shopping list not found", "Generate one first")
	}
	return plan.ShoppingList, nil
}

// GenerateShoppingList categorizes the plan's missing and extra ingredients and
// replaces any existing list.
func (s *PlanService) GenerateShoppingList(ctx context.Context, planID uuid.UUID) (*models.ShoppingList, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	var pantry string
	profile, err := s.profiles.RequireProfile(ctx)
	switch {
	case err == nil:
		pantry = profile.PantryText
	case !apperr.Is(err, apperr.CodeNotFound):
		return nil, err
	}

	p := prompt.ShoppingList(prompt.ShoppingInput{PantryText: pantry, Days: plan.Recipes()})

	result, err := runTask(ctx, s.gen, task[*schema.ShoppingList]{
		kind:        KindShoppingList,
		model:       s.gen.LightweightModel(),
		temperature: shoppingTemperature,
		prompt:      p,
		decode:      schema.DecodeShoppingList,
		repair:      prompt.RepairTarget{Schema: prompt.ShoppingListSchema},
	})
	if err != nil {
		return nil, err
	}

	list := &models.ShoppingList{
		PlanID:          planID,
		List:            *result.value,
		RawResponseJSON: result.raw,
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "plan_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"list_json", "raw_response_json", "updated_at"}),
		}).
		Create(list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}

	var saved models.ShoppingList
	if err := s.db.WithContext(ctx).First(&saved, "plan_id = ?", planID).Error; err != nil {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}
	s.archive.Store(ctx, archive.KindShoppingList, saved.ID.String(), result.raw)
	return &saved, nil
}

func withPlanTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_index ASC")
		}).
		Preload("ShoppingList")
}
