package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lectorank/lectorank-backend/internal/model"
)

// Storage contracts consumed by the voting services. The pgx repositories
// implement them in production; tests back them with in-memory stores that
// uphold the same uniqueness and counter invariants.

// AccountStore holds voter accounts and their daily vote budget.
type AccountStore interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	SaveAccount(ctx context.Context, a *model.Account) error
	ListAccounts(ctx context.Context) ([]model.Account, error)
	ResetAllQuotas(ctx context.Context) (int64, error)
}

// LecturerDirectory is the read side of the lecturer roster.
type LecturerDirectory interface {
	GetLecturer(ctx context.Context, id uuid.UUID) (*model.Lecturer, error)
	ListLecturers(ctx context.Context) ([]model.Lecturer, error)
}

// VoteLedger is the append/remove record of cast votes. Insert must detect
// a concurrent duplicate of the same (account, lecturer, day) triple and
// report it as model.ErrAlreadyVoted.
type VoteLedger interface {
	Exists(ctx context.Context, accountID, lecturerID uuid.UUID, day time.Time) (bool, error)
	Insert(ctx context.Context, v *model.Vote) error
	Delete(ctx context.Context, accountID, lecturerID uuid.UUID, day time.Time) error
	ListByLecturer(ctx context.Context, lecturerID uuid.UUID) ([]model.Vote, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Vote, error)
	CountOnDateByDepartment(ctx context.Context, accountID uuid.UUID, day time.Time) (map[string]int, error)
	CountOnDate(ctx context.Context, day time.Time) (int, error)
	CountByLecturer(ctx context.Context) (map[uuid.UUID]int, error)
	VotedLecturersOn(ctx context.Context, accountID uuid.UUID, day time.Time) (map[uuid.UUID]bool, error)
}

// FeedbackStore holds one-shot website ratings.
type FeedbackStore interface {
	Insert(ctx context.Context, f *model.Feedback) error
	Summary(ctx context.Context) (*model.FeedbackSummary, error)
	List(ctx context.Context, limit int) ([]model.Feedback, error)
}
