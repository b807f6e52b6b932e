package model

import (
	"time"

	"github.com/google/uuid"
)

// Lecturer represents a lecturer that accounts can vote for.
//
// Department is free text; it is classified into a subject category at
// evaluation time, not stored. Inactive lecturers keep their historical
// votes but cannot receive new ones.
type Lecturer struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LecturerStanding is a lecturer entry in a listing, annotated with its
// weighted vote total and whether the viewing account voted for it today.
type LecturerStanding struct {
	LecturerID    uuid.UUID `json:"lecturer_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Department    string    `json:"department"`
	IsActive      bool      `json:"is_active"`
	WeightedVotes int       `json:"weighted_votes"`
	VotedToday    bool      `json:"voted_today"`
}

// CreateLecturerRequest is the payload for creating a lecturer.
type CreateLecturerRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required,min=2,max=100"`
}

// UpdateLecturerRequest is the payload for updating a lecturer.
type UpdateLecturerRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required,min=2,max=100"`
	IsActive   *bool  `json:"is_active" binding:"required"`
}
