package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/types"
)

// ProfileService manages the pantry and utensil profile singleton
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the profile, creating an empty one on first access
func (s *ProfileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	profile := &models.Profile{Singleton: models.SingletonKey}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "singleton_key"}}, DoNothing: true}).
		Create(profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return s.load(ctx)
}

// UpdateProfile overwrites the pantry and utensil text in place
func (s *ProfileService) UpdateProfile(ctx context.Context, req *types.UpdateProfileRequest) (*models.Profile, error) {
	profile := &models.Profile{
		Singleton:    models.SingletonKey,
		PantryText:   req.PantryText,
		UtensilsText: req.UtensilsText,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "singleton_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"pantry_text", "utensils_text", "updated_at"}),
		}).
		Create(profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return s.load(ctx)
}

// RequireProfile returns the profile or a not-found error when none was saved yet.
// Generation needs the pantry context, so it never creates the profile implicitly.
func (s *ProfileService) RequireProfile(ctx context.Context) (*models.Profile, error) {
	profile, err := s.load(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "Profile not found", "set up your profile first")
	}
	return profile, err
}

func (s *ProfileService) load(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("singleton_key = ?", models.SingletonKey).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// DefaultPantry is the staple list written by SeedDefaults.
var DefaultPantry = []string{
	"olive oil", "vegetable oil", "butter", "salt", "black pepper",
	"garlic", "onions", "rice", "pasta", "all-purpose flour",
	"sugar", "eggs", "soy sauce", "canned tomatoes", "chicken stock",
}

// DefaultUtensils is the utensil list written by SeedDefaults.
var DefaultUtensils = []string{
	"chef's knife", "cutting board", "large skillet", "saucepan", "stock pot",
	"sheet pan", "mixing bowls", "measuring cups", "wooden spoon", "spatula",
	"colander", "oven", "stovetop",
}

// SeedDefaults fills an empty profile with the default lists.
// It reports false when a profile with content already exists.
func (s *ProfileService) SeedDefaults(ctx context.Context) (*models.Profile, bool, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(profile.PantryText) != "" || strings.TrimSpace(profile.UtensilsText) != "" {
		return profile, false, nil
	}
	profile, err = s.UpdateProfile(ctx, &types.UpdateProfileRequest{
		PantryText:   strings.Join(DefaultPantry, "\n"),
		UtensilsText: strings.Join(DefaultUtensils, "\n"),
	})
	if err != nil {
		return nil, false, err
	}
	return profile, true, nil
}
