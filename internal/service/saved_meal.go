package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/models"
)

type SavedMealService struct {
	db *gorm.DB
}

var _ ISavedMealService = (*SavedMealService)(nil)

func NewSavedMealService(db *gorm.DB) *SavedMealService {
	return &SavedMealService{db: db}
}

// ListSavedMeals returns saved meals newest-first with their option and its context
func (s *SavedMealService) ListSavedMeals(ctx context.Context) ([]models.SavedMeal, error) {
	var meals []models.SavedMeal
	err := s.db.WithContext(ctx).
		Preload("OptionItem.RecommendationSet.Session").
		Preload("OptionItem.Feedback").
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list saved meals: %w", err)
	}
	return meals, nil
}

// SaveMeal bookmarks an option. Saving twice returns the existing bookmark.
func (s *SavedMealService) SaveMeal(ctx context.Context, optionItemID uuid.UUID) (*models.SavedMeal, error) {
	if err := optionExists(ctx, s.db, optionItemID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "option_item_id"}}, DoNothing: true}).
		Create(&models.SavedMeal{OptionItemID: optionItemID}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}

	var meal models.SavedMeal
	if err := s.db.WithContext(ctx).Preload("OptionItem").First(&meal, "option_item_id = ?", optionItemID).Error; err != nil {
		return nil, fmt.Errorf("failed to get saved meal: %w", err)
	}
	return &meal, nil
}

func (s *SavedMealService) DeleteSavedMeal(ctx context.Context, optionItemID uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("option_item_id = ?", optionItemID).Delete(&models.SavedMeal{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete saved meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("Saved meal")
	}
	return nil
}
