package model

import (
	"time"

	"github.com/google/uuid"
)

// DailyVoteQuota is the number of votes every account receives each day.
const DailyVoteQuota = 3

// Account represents a voter account.
//
// Semester is nullable: accounts created before semester tracking was
// introduced carry no value and are exempt from the category rules.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Semester     *int      `json:"semester"`
	IsBanned     bool      `json:"is_banned"`
	VotesRemain  int       `json:"votes_remain"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountLoginRequest is the payload for account authentication.
type AccountLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// AccountLoginResponse is returned after successful account login.
type AccountLoginResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
}

// CreateAccountRequest is the payload for registering a new account.
type CreateAccountRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	Semester *int   `json:"semester" binding:"omitempty,min=0,max=9"`
}
