package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/types"
)

type SessionService struct {
	db *gorm.DB
}

var _ ISessionService = (*SessionService)(nil)

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession stores the extra ingredients and the constraints document
func (s *SessionService) CreateSession(ctx context.Context, req *types.CreateSessionRequest) (*models.Session, error) {
	constraints, err := json.Marshal(req.Constraints)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constraints: %w", err)
	}
	session := &models.Session{
		ExtraIngredientsText: req.ExtraIngredientsText,
		ConstraintsJSON:      string(constraints),
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetSession returns a session with its sets newest-first and options by idx
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := withSessionTree(s.db.WithContext(ctx)).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// ListSessions returns every session newest-first with the same nesting as GetSession
func (s *SessionService) ListSessions(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	if err := withSessionTree(s.db.WithContext(ctx)).Order("created_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func withSessionTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("RecommendationSets", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("RecommendationSets.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("idx ASC")
		}).
		Preload("RecommendationSets.Options.Feedback").
		Preload("RecommendationSets.Options.SavedMeal")
}
