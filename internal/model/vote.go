package model

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a single ledger entry. At most one row exists per
// (account, lecturer, voted date) triple; rows are created by Cast and
// removed by Cancel, never mutated.
type Vote struct {
	AccountID  uuid.UUID `json:"account_id"`
	LecturerID uuid.UUID `json:"lecturer_id"`
	VotedDate  time.Time `json:"voted_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// Day truncates t to its calendar date in t's location. Votes count per
// calendar day of the server's reference clock.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
