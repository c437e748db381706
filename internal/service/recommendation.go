package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealmind/backend/internal/archive"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/prompt"
	"github.com/pageza/mealmind/backend/internal/schema"
	"github.com/pageza/mealmind/backend/internal/types"
)

const recommendationTemperature = 0.7

// RecommendationService generates three meal options for a session or a chat message
type RecommendationService struct {
	db          *gorm.DB
	gen         *Generator
	profiles    IProfileService
	sessions    ISessionService
	preferences *PreferenceService
	archive     archive.Archiver
	logger      *zap.Logger
}

var _ IRecommendationService = (*RecommendationService)(nil)

func NewRecommendationService(
	db *gorm.DB,
	gen *Generator,
	profiles IProfileService,
	sessions ISessionService,
	preferences *PreferenceService,
	archiver archive.Archiver,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		db:          db,
		gen:         gen,
		profiles:    profiles,
		sessions:    sessions,
		preferences: preferences,
		archive:     archiver,
		logger:      logger,
	}
}

// Generate runs the pipeline for an existing session and stores the new set
func (s *RecommendationService) Generate(ctx context.Context, sessionID uuid.UUID) (*models.RecommendationSet, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.RequireProfile(ctx)
	if err != nil {
		return nil, err
	}
	constraints, err := types.ParseConstraints(session.ConstraintsJSON)
	if err != nil {
		s.logger.Warn("ignoring unreadable session constraints", zap.String("session_id", session.ID.String()), zap.Error(err))
	}
	feedback, err := recentFeedbackEntries(ctx, s.db)
	if err != nil {
		return nil, err
	}

	p := prompt.Recommendations(prompt.RecommendationInput{
		PantryText:           profile.PantryText,
		UtensilsText:         profile.UtensilsText,
		ExtraIngredientsText: session.ExtraIngredientsText,
		Constraints:          constraints,
		RecentFeedback:       feedback,
		PreferenceSummary:    s.preferences.summaryText(ctx),
	})

	result, err := runTask(ctx, s.gen, s.recommendationTask(p))
	if err != nil {
		return nil, err
	}

	set := newRecommendationSet(session.ID, s.gen.CapableModel(), prompt.VersionRecommendations, result)
	if err := s.db.WithContext(ctx).Create(set).Error; err != nil {
		return nil, fmt.Errorf("failed to save recommendations: %w", err)
	}
	s.archive.Store(ctx, archive.KindRecommendations, set.ID.String(), set.RawResponseJSON)

	s.logger.Info("recommendations generated",
		zap.String("session_id", session.ID.String()),
		zap.String("set_id", set.ID.String()),
		zap.Bool("repaired", result.repaired))
	return set, nil
}

// Chat generates options from a free-text message and, only on success, stores
// a new session holding the message together with its set.
func (s *RecommendationService) Chat(ctx context.Context, message string) (*models.Session, error) {
	profile, err := s.profiles.RequireProfile(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := recentFeedbackEntries(ctx, s.db)
	if err != nil {
		return nil, err
	}

	p := prompt.Chat(prompt.ChatInput{
		Message:           message,
		PantryText:        profile.PantryText,
		UtensilsText:      profile.UtensilsText,
		RecentFeedback:    feedback,
		PreferenceSummary: s.preferences.summaryText(ctx),
	})

	result, err := runTask(ctx, s.gen, s.recommendationTask(p))
	if err != nil {
		return nil, err
	}

	constraints, err := json.Marshal(types.Constraints{ChatInput: message})
	if err != nil {
		return nil, fmt.Errorf("failed to encode constraints: %w", err)
	}
	session := &models.Session{
		ExtraIngredientsText: message,
		ConstraintsJSON:      string(constraints),
	}

	var set *models.RecommendationSet
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		set = newRecommendationSet(session.ID, s.gen.CapableModel(), prompt.VersionChat, result)
		return tx.Create(set).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save chat recommendations: %w", err)
	}
	s.archive.Store(ctx, archive.KindRecommendations, set.ID.String(), set.RawResponseJSON)

	session.RecommendationSets = []models.RecommendationSet{*set}
	return session, nil
}

func (s *RecommendationService) recommendationTask(p prompt.Prompt) task[*schema.RecommendationResponse] {
	return task[*schema.RecommendationResponse]{
		kind:        KindRecommendations,
		model:       s.gen.CapableModel(),
		temperature: recommendationTemperature,
		prompt:      p,
		decode:      schema.DecodeRecommendations,
		repair:      prompt.RepairTarget{Schema: prompt.RecommendationSchema},
	}
}

func newRecommendationSet(sessionID uuid.UUID, model, version string, result outcome[*schema.RecommendationResponse]) *models.RecommendationSet {
	return &models.RecommendationSet{
		SessionID:       sessionID,
		Model:           model,
		PromptVersion:   version,
		RawResponseJSON: result.raw,
		Options:         models.NewOptionItems(result.value.Options),
	}
}
