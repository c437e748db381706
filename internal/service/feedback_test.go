package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/testhelpers"
	"github.com/pageza/mealmind/backend/internal/types"
)

func TestFeedback_SecondSubmissionReplacesFirst(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewFeedbackService(db)
	ctx := context.Background()
	set := testhelpers.SeedRecommendationSet(t, db, "A", "B", "C")
	optionID := set.Options[0].ID.String()

	first, err := svc.SubmitFeedback(ctx, &types.SubmitFeedbackRequest{
		OptionItemID: optionID,
		Decision:     types.DecisionReject,
		Reason:       types.ReasonTooLong,
	})
	require.NoError(t, err)
	require.NotNil(t, first.Reason)
	assert.Equal(t, "TOO_LONG", *first.Reason)

	second, err := svc.SubmitFeedback(ctx, &types.SubmitFeedbackRequest{
		OptionItemID: optionID,
		Decision:     types.DecisionAccept,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "ACCEPT", second.Decision)
	assert.Nil(t, second.Reason)
	assert.Nil(t, second.ReasonNote)

	var rows []models.OptionFeedback
	require.NoError(t, db.Where("option_item_id = ?", optionID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "ACCEPT", rows[0].Decision)
}

func TestFeedback_ReasonNote(t *testing.T) {
	tests := []struct {
		name     string
		reason   types.Reason
		wantNote bool
	}{
		{"kept for other", types.ReasonOther, true},
		{"dropped for a fixed reason", types.ReasonTooComplex, false},
		{"dropped without a reason", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testhelpers.SetupSQLite(t)
			set := testhelpers.SeedRecommendationSet(t, db, "A", "B", "C")

			saved, err := NewFeedbackService(db).SubmitFeedback(context.Background(), &types.SubmitFeedbackRequest{
				OptionItemID: set.Options[1].ID.String(),
				Decision:     types.DecisionNotNow,
				Reason:       tt.reason,
				ReasonNote:   "already had it for lunch",
			})
			require.NoError(t, err)
			if tt.wantNote {
				require.NotNil(t, saved.ReasonNote)
				assert.Equal(t, "already had it for lunch", *saved.ReasonNote)
			} else {
				assert.Nil(t, saved.ReasonNote)
			}
		})
	}
}

func TestFeedback_UnknownOption(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewFeedbackService(db)

	_, err := svc.SubmitFeedback(context.Background(), &types.SubmitFeedbackRequest{
		OptionItemID: uuid.NewString(),
		Decision:     types.DecisionAccept,
	})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = svc.SubmitFeedback(context.Background(), &types.SubmitFeedbackRequest{
		OptionItemID: "not-a-uuid",
		Decision:     types.DecisionAccept,
	})
	assert.True(t, apperr.Is(err, apperr.CodeInvalidInput))
}

func TestFeedback_RecentEntriesNewestFirst(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewFeedbackService(db)
	ctx := context.Background()
	titles := make([]string, RecentFeedbackLimit+2)
	for i := range titles {
		titles[i] = uuid.NewString()
	}
	set := testhelpers.SeedRecommendationSet(t, db, titles...)
	for _, opt := range set.Options {
		_, err := svc.SubmitFeedback(ctx, &types.SubmitFeedbackRequest{
			OptionItemID: opt.ID.String(),
			Decision:     types.DecisionAccept,
		})
		require.NoError(t, err)
	}

	entries, err := recentFeedbackEntries(ctx, db)
	require.NoError(t, err)
	require.Len(t, entries, RecentFeedbackLimit)
	assert.Equal(t, titles[len(titles)-1], entries[0].Title)
}
