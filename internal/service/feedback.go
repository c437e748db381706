package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/prompt"
	"github.com/pageza/mealmind/backend/internal/types"
)

// RecentFeedbackLimit is how many decisions are shown to generation prompts
const RecentFeedbackLimit = 10

type FeedbackService struct {
	db *gorm.DB
}

var _ IFeedbackService = (*FeedbackService)(nil)

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// SubmitFeedback records the decision for an option, replacing any earlier one
func (s *FeedbackService) SubmitFeedback(ctx context.Context, req *types.SubmitFeedbackRequest) (*models.OptionFeedback, error) {
	optionID, err := uuid.Parse(req.OptionItemID)
	if err != nil {
		return nil, apperr.InvalidInput("invalid option item id")
	}
	if err := optionExists(ctx, s.db, optionID); err != nil {
		return nil, err
	}

	feedback := &models.OptionFeedback{
		OptionItemID: optionID,
		Decision:     string(req.Decision),
	}
	if req.Reason != "" {
		reason := string(req.Reason)
		feedback.Reason = &reason
		if req.Reason == types.ReasonOther && req.ReasonNote != "" {
			note := req.ReasonNote
			feedback.ReasonNote = &note
		}
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "option_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"decision", "reason", "reason_note", "updated_at"}),
		}).
		Create(feedback).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	var saved models.OptionFeedback
	if err := s.db.WithContext(ctx).First(&saved, "option_item_id = ?", optionID).Error; err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return &saved, nil
}

func optionExists(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var option models.OptionItem
	err := db.WithContext(ctx).Select("id").First(&option, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Option")
		}
		return fmt.Errorf("failed to get option: %w", err)
	}
	return nil
}

// latestFeedback returns the most recently updated decisions with their option,
// set and session loaded.
func latestFeedback(ctx context.Context, db *gorm.DB, limit int) ([]models.OptionFeedback, error) {
	var rows []models.OptionFeedback
	err := db.WithContext(ctx).
		Preload("OptionItem.RecommendationSet.Session").
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	return rows, nil
}

// recentFeedbackEntries renders the latest decisions for prompt assembly
func recentFeedbackEntries(ctx context.Context, db *gorm.DB) ([]prompt.FeedbackEntry, error) {
	rows, err := latestFeedback(ctx, db, RecentFeedbackLimit)
	if err != nil {
		return nil, err
	}
	entries := make([]prompt.FeedbackEntry, 0, len(rows))
	for _, f := range rows {
		if f.OptionItem == nil {
			continue
		}
		entries = append(entries, prompt.FeedbackEntry{Title: f.OptionItem.Title, Decision: f.Decision})
	}
	return entries, nil
}
