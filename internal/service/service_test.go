package service

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealmind/backend/config"
	"github.com/pageza/mealmind/backend/internal/archive"
	"github.com/pageza/mealmind/backend/internal/cache"
	"github.com/pageza/mealmind/backend/internal/metrics"
	"github.com/pageza/mealmind/backend/internal/mocks"
	"github.com/pageza/mealmind/backend/internal/testhelpers"
)

const (
	testCapable     = "capable-model"
	testLightweight = "light-model"
)

type testEnv struct {
	db          *gorm.DB
	completer   *mocks.MockCompleter
	metrics     *metrics.Metrics
	gen         *Generator
	profiles    *ProfileService
	sessions    *SessionService
	preferences *PreferenceService
	recs        *RecommendationService
	plans       *PlanService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	completer := &mocks.MockCompleter{}
	m := metrics.Nop()
	logger := zap.NewNop()

	gen := NewGenerator(completer, config.LLMConfig{
		CapableModel:     testCapable,
		LightweightModel: testLightweight,
		Timeout:          time.Second,
	}, m, logger)

	profiles := NewProfileService(db)
	sessions := NewSessionService(db)
	preferences := NewPreferenceService(db, gen, cache.Noop{}, m, logger)

	return &testEnv{
		db:          db,
		completer:   completer,
		metrics:     m,
		gen:         gen,
		profiles:    profiles,
		sessions:    sessions,
		preferences: preferences,
		recs:        NewRecommendationService(db, gen, profiles, sessions, preferences, archive.Noop{}, logger),
		plans:       NewPlanService(db, gen, profiles, preferences, archive.Noop{}, logger),
	}
}
