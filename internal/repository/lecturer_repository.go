package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lectorank/lectorank-backend/internal/model"
)

// LecturerRepository handles lecturer directory data access.
type LecturerRepository struct {
	pool *pgxpool.Pool
}

// NewLecturerRepository creates a new LecturerRepository.
func NewLecturerRepository(pool *pgxpool.Pool) *LecturerRepository {
	return &LecturerRepository{pool: pool}
}

const lecturerColumns = `id, name, email, department, is_active, created_at, updated_at`

// GetLecturer retrieves a lecturer by ID.
func (r *LecturerRepository) GetLecturer(ctx context.Context, id uuid.UUID) (*model.Lecturer, error) {
	l := &model.Lecturer{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+lecturerColumns+` FROM lecturers WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.Email, &l.Department, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLecturerNotFound
		}
		return nil, err
	}
	return l, nil
}

// ListLecturers retrieves all lecturers ordered by name.
func (r *LecturerRepository) ListLecturers(ctx context.Context) ([]model.Lecturer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+lecturerColumns+` FROM lecturers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lecturers []model.Lecturer
	for rows.Next() {
		var l model.Lecturer
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Department, &l.IsActive,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lecturers = append(lecturers, l)
	}
	return lecturers, rows.Err()
}

// Create inserts a new active lecturer.
func (r *LecturerRepository) Create(ctx context.Context, l *model.Lecturer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO lecturers (id, name, email, department, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING created_at, updated_at`,
		l.ID, l.Name, l.Email, l.Department,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
}

// Update persists lecturer fields, including the active flag.
func (r *LecturerRepository) Update(ctx context.Context, l *model.Lecturer) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE lecturers
		 SET name = $1, email = $2, department = $3, is_active = $4, updated_at = NOW()
		 WHERE id = $5`,
		l.Name, l.Email, l.Department, l.IsActive, l.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLecturerNotFound
	}
	return nil
}

// Delete removes a lecturer. Historical votes are removed with it via the
// ledger's foreign key; deactivation is the non-destructive alternative.
func (r *LecturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lecturers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLecturerNotFound
	}
	return nil
}
