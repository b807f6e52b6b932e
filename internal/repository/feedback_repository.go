package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lectorank/lectorank-backend/internal/model"
)

// FeedbackRepository handles website feedback data access.
type FeedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

// Insert stores an account's one-shot rating. A second submission hits the
// primary key on account_id and comes back as model.ErrFeedbackExists.
func (r *FeedbackRepository) Insert(ctx context.Context, f *model.Feedback) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO feedback (account_id, rating, comment)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (account_id) DO NOTHING`,
		f.AccountID, f.Rating, f.Comment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrFeedbackExists
	}
	return nil
}

// Summary aggregates all submitted ratings.
func (r *FeedbackRepository) Summary(ctx context.Context) (*model.FeedbackSummary, error) {
	s := &model.FeedbackSummary{}
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM feedback`,
	).Scan(&s.AverageRating, &s.TotalEntries)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves the most recent feedback entries, newest first.
func (r *FeedbackRepository) List(ctx context.Context, limit int) ([]model.Feedback, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT account_id, rating, comment, created_at
		 FROM feedback
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.Feedback
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.AccountID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}
