package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/llm"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/testhelpers"
	"github.com/pageza/mealmind/backend/internal/types"
)

func TestRecommendations_Generate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testhelpers.SeedProfile(t, env.db)

	timeMins := 20.0
	session, err := env.sessions.CreateSession(ctx, &types.CreateSessionRequest{
		ExtraIngredientsText: "chicken thighs",
		Constraints:          types.Constraints{TimeMins: &timeMins, Diet: "low carb"},
	})
	require.NoError(t, err)

	raw := testhelpers.RecommendationJSON(t, "Tacos", "Bowl", "Salad")
	env.completer.On("Complete", mock.Anything, mock.Anything).Return(raw, nil).Once()

	set, err := env.recs.Generate(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, raw, set.RawResponseJSON)
	assert.Equal(t, "v2", set.PromptVersion)
	assert.Equal(t, testCapable, set.Model)
	require.Len(t, set.Options, 3)
	assert.Equal(t, 1, set.Options[0].Idx)
	assert.Equal(t, "Salad", set.Options[2].Title)

	req := env.completer.Requests()[0]
	user := req.Messages[1].Content
	assert.Contains(t, user, "PANTRY STAPLES (always available):\nrice\nbeans")
	assert.Contains(t, user, "EXTRA INGREDIENTS (available for this meal):\nchicken thighs")
	assert.Contains(t, user, "- timeMins: 20\n- diet: low carb")

	stored, err := env.sessions.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, stored.RecommendationSets, 1)
	assert.Len(t, stored.RecommendationSets[0].Options, 3)
}

func TestRecommendations_RequiresProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session, err := env.sessions.CreateSession(ctx, &types.CreateSessionRequest{})
	require.NoError(t, err)

	_, err = env.recs.Generate(ctx, session.ID)
	appErr := apperr.As(err)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
	assert.Equal(t, "set up your profile first", appErr.Details)
	env.completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestRecommendations_UnknownSession(t *testing.T) {
	env := newTestEnv(t)
	testhelpers.SeedProfile(t, env.db)

	_, err := env.recs.Generate(context.Background(), uuid.New())
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestRecommendations_FailureStoresNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testhelpers.SeedProfile(t, env.db)
	session, err := env.sessions.CreateSession(ctx, &types.CreateSessionRequest{})
	require.NoError(t, err)

	env.completer.On("Complete", mock.Anything, mock.Anything).Return("{broken", nil)

	_, err = env.recs.Generate(ctx, session.ID)
	assert.True(t, apperr.Is(err, apperr.CodeGenerationFailed))

	var count int64
	require.NoError(t, env.db.Model(&models.RecommendationSet{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecommendations_FeedbackAndSummaryInPrompt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testhelpers.SeedProfile(t, env.db)
	set := testhelpers.SeedRecommendationSet(t, env.db, "Old Curry", "Old Pasta", "Old Soup")

	feedback := NewFeedbackService(env.db)
	_, err := feedback.SubmitFeedback(ctx, &types.SubmitFeedbackRequest{
		OptionItemID: set.Options[0].ID.String(),
		Decision:     types.DecisionReject,
	})
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&models.PreferenceSummary{
		Singleton:   models.SingletonKey,
		SummaryText: "Prefers mild food.",
	}).Error)

	env.completer.On("Complete", mock.Anything, mock.Anything).
		Return(testhelpers.RecommendationJSON(t, "A", "B", "C"), nil).Once()

	_, err = env.recs.Generate(ctx, set.SessionID)
	require.NoError(t, err)

	user := env.completer.Requests()[0].Messages[1].Content
	assert.Contains(t, user, "Recent meal feedback (learn from this):\n- \"Old Curry\": REJECT")
	assert.Contains(t, user, "learned preferences):\nPrefers mild food.")
}

func TestRecommendations_Chat(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testhelpers.SeedProfile(t, env.db)

	env.completer.On("Complete", mock.Anything, mock.Anything).
		Return(testhelpers.RecommendationJSON(t, "A", "B", "C"), nil).Once()

	session, err := env.recs.Chat(ctx, "something warm with lentils")
	require.NoError(t, err)

	assert.Equal(t, "something warm with lentils", session.ExtraIngredientsText)
	assert.JSONEq(t, `{"chatInput":"something warm with lentils"}`, session.ConstraintsJSON)
	require.Len(t, session.RecommendationSets, 1)
	assert.Equal(t, "chat-v2", session.RecommendationSets[0].PromptVersion)

	req := env.completer.Requests()[0]
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "something warm with lentils"}, req.Messages[1])
}

func TestRecommendations_ChatFailureCreatesNoSession(t *testing.T) {
	env := newTestEnv(t)
	testhelpers.SeedProfile(t, env.db)
	env.completer.On("Complete", mock.Anything, mock.Anything).Return("", llm.ErrUnavailable)

	_, err := env.recs.Chat(context.Background(), "pasta")
	assert.True(t, apperr.Is(err, apperr.CodeProviderUnavailable))

	var count int64
	require.NoError(t, env.db.Model(&models.Session{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSessions_ListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := testhelpers.SeedRecommendationSet(t, env.db, "A", "B", "C")
	second := testhelpers.SeedRecommendationSet(t, env.db, "D", "E", "F")
	require.NoError(t, env.db.Model(&models.Session{}).Where("id = ?", first.SessionID).
		Update("created_at", second.CreatedAt.Add(-time.Minute)).Error)

	sessions, err := env.sessions.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, second.SessionID, sessions[0].ID)
	assert.Equal(t, "D", sessions[0].RecommendationSets[0].Options[0].Title)
}
