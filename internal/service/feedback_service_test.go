package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackSubmitOncePerAccount(t *testing.T) {
	svc := NewFeedbackService(newFakeFeedbackStore(), zerolog.Nop())
	ctx := context.Background()
	account := uuid.New()

	entry, err := svc.Submit(ctx, account, 5, "great idea")
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Rating)
	assert.False(t, entry.CreatedAt.IsZero())

	_, err = svc.Submit(ctx, account, 1, "changed my mind")
	assert.ErrorIs(t, err, model.ErrFeedbackExists)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalEntries)
	assert.InDelta(t, 5.0, summary.AverageRating, 0.001)
}

func TestFeedbackSummaryAverages(t *testing.T) {
	svc := NewFeedbackService(newFakeFeedbackStore(), zerolog.Nop())
	ctx := context.Background()

	for _, rating := range []int{2, 3, 5} {
		_, err := svc.Submit(ctx, uuid.New(), rating, "")
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalEntries)
	assert.InDelta(t, 10.0/3.0, summary.AverageRating, 0.001)
}

func TestFeedbackSummaryEmpty(t *testing.T) {
	svc := NewFeedbackService(newFakeFeedbackStore(), zerolog.Nop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalEntries)
	assert.Zero(t, summary.AverageRating)
}

func TestFeedbackRecentClampsLimit(t *testing.T) {
	store := newFakeFeedbackStore()
	svc := NewFeedbackService(store, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := svc.Submit(ctx, uuid.New(), 4, "")
		require.NoError(t, err)
	}

	entries, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 20, "non-positive limit falls back to the default")

	entries, err = svc.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}
