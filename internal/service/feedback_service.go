package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/model"
	"github.com/rs/zerolog"
)

// FeedbackService handles the one-shot website rating.
type FeedbackService struct {
	store FeedbackStore
	log   zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(store FeedbackStore, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		store: store,
		log:   log.With().Str("component", "feedback_service").Logger(),
	}
}

// Submit records an account's rating. Each account gets exactly one; a
// repeat submission returns model.ErrFeedbackExists.
func (s *FeedbackService) Submit(ctx context.Context, accountID uuid.UUID, rating int, comment string) (*model.Feedback, error) {
	f := &model.Feedback{
		AccountID: accountID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.store.Insert(ctx, f); err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", accountID.String()).Int("rating", rating).Msg("Feedback submitted")
	return f, nil
}

// Summary returns the aggregate rating across all submissions.
func (s *FeedbackService) Summary(ctx context.Context) (*model.FeedbackSummary, error) {
	return s.store.Summary(ctx)
}

// Recent returns the latest feedback entries for the admin view.
func (s *FeedbackService) Recent(ctx context.Context, limit int) ([]model.Feedback, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.List(ctx, limit)
}
