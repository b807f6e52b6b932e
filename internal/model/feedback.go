package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a one-shot website rating. Each account may submit exactly
// one; repeated submissions are rejected.
type Feedback struct {
	AccountID uuid.UUID `json:"account_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackSummary aggregates all submitted ratings.
type FeedbackSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalEntries  int     `json:"total_entries"`
}

// SubmitFeedbackRequest is the payload for submitting a website rating.
type SubmitFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=2000"`
}
