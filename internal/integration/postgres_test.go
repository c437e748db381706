package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealmind/backend/config"
	"github.com/pageza/mealmind/backend/internal/api"
	"github.com/pageza/mealmind/backend/internal/archive"
	"github.com/pageza/mealmind/backend/internal/cache"
	"github.com/pageza/mealmind/backend/internal/database"
	"github.com/pageza/mealmind/backend/internal/metrics"
	"github.com/pageza/mealmind/backend/internal/middleware"
	"github.com/pageza/mealmind/backend/internal/mocks"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/router"
	"github.com/pageza/mealmind/backend/internal/service"
	"github.com/pageza/mealmind/backend/internal/testhelpers"
	"github.com/pageza/mealmind/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestPostgres_MigrationsAreRepeatable(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	require.NoError(t, database.RunMigrations(db))
	assert.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestPostgres_SingletonUpserts(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()
	profiles := service.NewProfileService(db)

	first, err := profiles.UpdateProfile(ctx, &types.UpdateProfileRequest{PantryText: "rice"})
	require.NoError(t, err)
	second, err := profiles.UpdateProfile(ctx, &types.UpdateProfileRequest{PantryText: "rice\nmiso"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), count(t, db, &models.Profile{}))

	set := testhelpers.SeedRecommendationSet(t, db, "A", "B", "C")
	feedback := service.NewFeedbackService(db)
	optionID := set.Options[0].ID.String()

	rejected, err := feedback.SubmitFeedback(ctx, &types.SubmitFeedbackRequest{
		OptionItemID: optionID, Decision: types.DecisionReject, Reason: types.ReasonTooLong,
	})
	require.NoError(t, err)
	accepted, err := feedback.SubmitFeedback(ctx, &types.SubmitFeedbackRequest{
		OptionItemID: optionID, Decision: types.DecisionAccept,
	})
	require.NoError(t, err)
	assert.Equal(t, rejected.ID, accepted.ID)
	assert.Nil(t, accepted.Reason)
	assert.Equal(t, int64(1), count(t, db, &models.OptionFeedback{}))

	saved := service.NewSavedMealService(db)
	one, err := saved.SaveMeal(ctx, set.Options[1].ID)
	require.NoError(t, err)
	two, err := saved.SaveMeal(ctx, set.Options[1].ID)
	require.NoError(t, err)
	assert.Equal(t, one.ID, two.ID)
}

func TestPostgres_PlanDeleteCascades(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()
	plan := testhelpers.SeedPlan(t, db,
		testhelpers.PlanDay("Tacos", nil, []string{"tortillas"}),
		testhelpers.PlanDay("Curry", nil, []string{"coconut milk"}),
		testhelpers.PlanDay("Soup", nil, []string{"leeks"}),
	)
	require.NoError(t, db.Create(&models.ShoppingList{PlanID: plan.ID, RawResponseJSON: "{}"}).Error)

	plans := service.NewPlanService(db, nil, service.NewProfileService(db), nil, archive.Noop{}, zap.NewNop())
	stored, err := plans.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, stored.Days, 3)
	assert.Equal(t, "Curry", stored.Days[1].Recipe.Title)
	assert.NotNil(t, stored.ShoppingList)

	require.NoError(t, plans.DeletePlan(ctx, plan.ID))
	assert.Zero(t, count(t, db, &models.PlanDay{}))
	assert.Zero(t, count(t, db, &models.ShoppingList{}))
}

func TestPostgres_GenerationThroughRouter(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	redisClient := testhelpers.SetupRedis(t)
	logger := zap.NewNop()
	m := metrics.New(prometheus.NewRegistry())

	completer := &mocks.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.Anything).
		Return(testhelpers.RecommendationJSON(t, "Dal", "Ramen", "Paella"), nil)

	gen := service.NewGenerator(completer, config.LLMConfig{
		CapableModel:     "capable-model",
		LightweightModel: "light-model",
		Timeout:          5 * time.Second,
	}, m, logger)
	profiles := service.NewProfileService(db)
	sessions := service.NewSessionService(db)
	preferences := service.NewPreferenceService(db, gen, cache.NewSummaryCache(redisClient, logger), m, logger)

	engine := router.SetupRouter(api.Services{
		Profiles:        profiles,
		Sessions:        sessions,
		Recommendations: service.NewRecommendationService(db, gen, profiles, sessions, preferences, archive.Noop{}, logger),
		Feedback:        service.NewFeedbackService(db),
		SavedMeals:      service.NewSavedMealService(db),
		Preferences:     preferences,
		Plans:           service.NewPlanService(db, gen, profiles, preferences, archive.Noop{}, logger),
	}, router.Options{
		Logger: logger,
		Health: api.NewHealthHandler(db, redisClient, logger),
		RateLimiter: middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     2,
			KeyPrefix: "mealmind:test:generate",
		}, logger),
	})

	post := func(path string, body interface{}) *httptest.ResponseRecorder {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1"+path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	testhelpers.SeedProfile(t, db)
	assert.Equal(t, http.StatusCreated, post("/chat", map[string]string{"message": "something with lentils"}).Code)
	assert.Equal(t, http.StatusCreated, post("/chat", map[string]string{"message": "noodles"}).Code)

	limited := post("/chat", map[string]string{"message": "rice"})
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, int64(2), count(t, db, &models.Session{}))
	assert.Equal(t, int64(6), count(t, db, &models.OptionItem{}))
}
