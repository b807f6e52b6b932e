package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lectorank/lectorank-backend/internal/model"
)

// VoteRepository handles vote ledger data access. The unique index on
// (account_id, lecturer_id, voted_date) is the final guard against a
// duplicate row slipping past the engine's checks.
type VoteRepository struct {
	pool *pgxpool.Pool
}

// NewVoteRepository creates a new VoteRepository.
func NewVoteRepository(pool *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{pool: pool}
}

// Exists reports whether a vote row exists for the triple on the given day.
func (r *VoteRepository) Exists(ctx context.Context, accountID, lecturerID uuid.UUID, day time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM votes
		   WHERE account_id = $1 AND lecturer_id = $2 AND voted_date = $3
		 )`, accountID, lecturerID, day).Scan(&exists)
	return exists, err
}

// Insert appends a ledger row. A conflicting row for the same triple turns
// the insert into model.ErrAlreadyVoted instead of a silent no-op.
func (r *VoteRepository) Insert(ctx context.Context, v *model.Vote) error {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO votes (account_id, lecturer_id, voted_date)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (account_id, lecturer_id, voted_date) DO NOTHING`,
		v.AccountID, v.LecturerID, v.VotedDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlreadyVoted
	}
	return nil
}

// Delete removes the ledger row for the triple on the given day.
func (r *VoteRepository) Delete(ctx context.Context, accountID, lecturerID uuid.UUID, day time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM votes
		 WHERE account_id = $1 AND lecturer_id = $2 AND voted_date = $3`,
		accountID, lecturerID, day)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVoteNotFound
	}
	return nil
}

// ListByLecturer retrieves every ledger row for a lecturer, all dates.
func (r *VoteRepository) ListByLecturer(ctx context.Context, lecturerID uuid.UUID) ([]model.Vote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT account_id, lecturer_id, voted_date, created_at
		 FROM votes WHERE lecturer_id = $1
		 ORDER BY voted_date DESC`, lecturerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []model.Vote
	for rows.Next() {
		var v model.Vote
		if err := rows.Scan(&v.AccountID, &v.LecturerID, &v.VotedDate, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// ListByAccount retrieves an account's full voting history.
func (r *VoteRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Vote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT account_id, lecturer_id, voted_date, created_at
		 FROM votes WHERE account_id = $1
		 ORDER BY voted_date DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []model.Vote
	for rows.Next() {
		var v model.Vote
		if err := rows.Scan(&v.AccountID, &v.LecturerID, &v.VotedDate, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// CountOnDateByDepartment counts the account's votes on the given day,
// grouped by the voted lecturers' current departments.
func (r *VoteRepository) CountOnDateByDepartment(ctx context.Context, accountID uuid.UUID, day time.Time) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT l.department, COUNT(*)
		 FROM votes v
		 JOIN lecturers l ON l.id = v.lecturer_id
		 WHERE v.account_id = $1 AND v.voted_date = $2
		 GROUP BY l.department`, accountID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var dept string
		var n int
		if err := rows.Scan(&dept, &n); err != nil {
			return nil, err
		}
		counts[dept] = n
	}
	return counts, rows.Err()
}

// CountOnDate counts all votes cast platform-wide on the given day.
func (r *VoteRepository) CountOnDate(ctx context.Context, day time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM votes WHERE voted_date = $1`, day).Scan(&n)
	return n, err
}

// CountByLecturer returns the raw (unweighted) vote count of every lecturer
// that has at least one ledger row. Used by listings to avoid N queries.
func (r *VoteRepository) CountByLecturer(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT lecturer_id, COUNT(*) FROM votes GROUP BY lecturer_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// VotedLecturersOn returns the set of lecturers the account voted for on
// the given day. Used to annotate listings for the viewing account.
func (r *VoteRepository) VotedLecturersOn(ctx context.Context, accountID uuid.UUID, day time.Time) (map[uuid.UUID]bool, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT lecturer_id FROM votes
		 WHERE account_id = $1 AND voted_date = $2`, accountID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	voted := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		voted[id] = true
	}
	return voted, rows.Err()
}
