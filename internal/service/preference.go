package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/cache"
	"github.com/pageza/mealmind/backend/internal/llm"
	"github.com/pageza/mealmind/backend/internal/metrics"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/prompt"
)

const (
	// SummaryFeedbackWindow is how many decisions feed one summarization
	SummaryFeedbackWindow = 30

	summaryTemperature = 0.3
	summaryMaxTokens   = 500

	MessageNothingToSummarize = "No feedback to summarize"
	MessageNoSummaryYet       = "No preference summary generated yet"
)

// SummaryResult is the outcome of a summarization run. Summary is nil, with
// Message set, when there was no feedback.
type SummaryResult struct {
	Summary *models.PreferenceSummary
	Message string
}

type PreferenceService struct {
	db      *gorm.DB
	gen     *Generator
	cache   cache.SummaryCache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

var _ IPreferenceService = (*PreferenceService)(nil)

func NewPreferenceService(db *gorm.DB, gen *Generator, summaryCache cache.SummaryCache, m *metrics.Metrics, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{
		db:      db,
		gen:     gen,
		cache:   summaryCache,
		metrics: m,
		logger:  logger,
	}
}

// Summarize rebuilds the preference summary from the latest feedback window and
// overwrites the stored singleton.
func (s *PreferenceService) Summarize(ctx context.Context) (*SummaryResult, error) {
	rows, err := latestFeedback(ctx, s.db, SummaryFeedbackWindow)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		s.metrics.RecordSummary("empty")
		return &SummaryResult{Message: MessageNothingToSummarize}, nil
	}

	text, err := prompt.Summary(summaryEvents(rows))
	if err != nil {
		return nil, apperr.Internal("failed to build summary prompt", err)
	}

	out, err := s.gen.Text(ctx, KindSummary, llm.CompletionRequest{
		Model:       s.gen.LightweightModel(),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: text}},
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		s.metrics.RecordSummary(metrics.OutcomeProviderError)
		s.logger.Error("summary provider call failed", zap.Error(err))
		return nil, err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		s.metrics.RecordSummary(metrics.OutcomeFailed)
		return nil, apperr.GenerationFailed(KindSummary, errors.New("provider returned an empty summary"))
	}

	summary := &models.PreferenceSummary{
		Singleton:   models.SingletonKey,
		SummaryText: prompt.ClipSummary(out),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "singleton_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"summary_text", "updated_at"}),
		}).
		Create(summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save preference summary: %w", err)
	}

	saved, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, saved)
	s.metrics.RecordSummary(metrics.OutcomeOK)
	s.logger.Info("preference summary updated",
		zap.Int("feedback", len(rows)),
		zap.Int("length", len([]rune(saved.SummaryText))))

	return &SummaryResult{Summary: saved}, nil
}

// Current returns the stored summary, or nil when none was generated yet
func (s *PreferenceService) Current(ctx context.Context) (*models.PreferenceSummary, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		var summary models.PreferenceSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
		s.cache.Invalidate(ctx)
	}

	summary, err := s.load(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.store(ctx, summary)
	return summary, nil
}

// summaryText is the summary injected into generation prompts. Lookup failures
// only drop the personalization.
func (s *PreferenceService) summaryText(ctx context.Context) string {
	summary, err := s.Current(ctx)
	if err != nil {
		s.logger.Warn("failed to load preference summary", zap.Error(err))
		return ""
	}
	if summary == nil {
		return ""
	}
	return summary.SummaryText
}

func (s *PreferenceService) load(ctx context.Context) (*models.PreferenceSummary, error) {
	var summary models.PreferenceSummary
	err := s.db.WithContext(ctx).Where("singleton_key = ?", models.SingletonKey).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get preference summary: %w", err)
	}
	return &summary, nil
}

func (s *PreferenceService) store(ctx context.Context, summary *models.PreferenceSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	s.cache.Set(ctx, string(data))
}

func summaryEvents(rows []models.OptionFeedback) []prompt.SummaryEvent {
	events := make([]prompt.SummaryEvent, 0, len(rows))
	for _, f := range rows {
		if f.OptionItem == nil {
			continue
		}
		opt := f.OptionItem
		event := prompt.SummaryEvent{
			Title:              opt.Title,
			Decision:           f.Decision,
			Reason:             f.Reason,
			ReasonNote:         f.ReasonNote,
			TimeMins:           opt.TimeMins,
			Difficulty:         opt.Difficulty,
			IngredientsUsed:    opt.IngredientsUsed,
			MissingIngredients: []string(opt.MissingIngredients),
		}
		if event.MissingIngredients == nil {
			event.MissingIngredients = []string{}
		}
		event.Constraints = map[string]any{}
		if opt.RecommendationSet != nil && opt.RecommendationSet.Session != nil {
			var constraints map[string]any
			if err := json.Unmarshal([]byte(opt.RecommendationSet.Session.ConstraintsJSON), &constraints); err == nil && constraints != nil {
				event.Constraints = constraints
			}
		}
		events = append(events, event)
	}
	return events
}
