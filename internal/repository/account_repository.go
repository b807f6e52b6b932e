package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lectorank/lectorank-backend/internal/model"
)

// AccountRepository handles voter account data access.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, email, name, password_hash, semester, is_banned, votes_remain, created_at, updated_at`

func scanAccount(row pgx.Row) (*model.Account, error) {
	a := &model.Account{}
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Semester,
		&a.IsBanned, &a.VotesRemain, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

// GetAccount retrieves an account by ID.
func (r *AccountRepository) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

// GetByEmail retrieves an account by email, used for login.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email))
}

// Create inserts a new account with a full daily vote budget.
func (r *AccountRepository) Create(ctx context.Context, a *model.Account) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO accounts (id, email, name, password_hash, semester, votes_remain)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		a.ID, a.Email, a.Name, a.PasswordHash, a.Semester, model.DailyVoteQuota,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

// SaveAccount persists the mutable engine-owned fields of an account.
func (r *AccountRepository) SaveAccount(ctx context.Context, a *model.Account) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts
		 SET semester = $1, is_banned = $2, votes_remain = $3, updated_at = NOW()
		 WHERE id = $4`,
		a.Semester, a.IsBanned, a.VotesRemain, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}

// ListAccounts retrieves all accounts ordered by name.
func (r *AccountRepository) ListAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.Semester,
			&a.IsBanned, &a.VotesRemain, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ResetAllQuotas restores the daily vote budget of every account that has
// spent any of it. Returns the number of accounts updated; running it a
// second time on the same state updates nothing.
func (r *AccountRepository) ResetAllQuotas(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts
		 SET votes_remain = $1, updated_at = NOW()
		 WHERE votes_remain <> $1`, model.DailyVoteQuota)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SetBanned flips the ban flag on an account.
func (r *AccountRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET is_banned = $1, updated_at = NOW() WHERE id = $2`,
		banned, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAccountNotFound
	}
	return nil
}
