package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
)

// AccomplishmentRepo implements AccomplishmentRepository using PostgreSQL.
type AccomplishmentRepo struct{ db *DB }

// NewAccomplishmentRepo constructs an accomplishment repository.
func NewAccomplishmentRepo(db *DB) *AccomplishmentRepo { return &AccomplishmentRepo{db: db} }

const accomplishmentColumns = `id, user_id, challenge_id, validated, created_at`

// Create inserts an accomplishment row and returns the generated id.
func (r *AccomplishmentRepo) Create(ctx context.Context, a *model.Accomplishment) (int64, error) {
	const q = `
INSERT INTO accomplishments (user_id, challenge_id, validated)
VALUES ($1, $2, $3)
RETURNING id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q, a.UserID, a.ChallengeID, a.Validated).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, errs.ErrBadRequest
		}
		return 0, err
	}
	return id, nil
}

// GetByID selects an accomplishment by id.
func (r *AccomplishmentRepo) GetByID(ctx context.Context, id int64) (*model.Accomplishment, error) {
	const q = `SELECT ` + accomplishmentColumns + ` FROM accomplishments WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var a model.Accomplishment
	if err := row.Scan(&a.ID, &a.UserID, &a.ChallengeID, &a.Validated, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns all accomplishments ordered by id.
func (r *AccomplishmentRepo) List(ctx context.Context) ([]model.Accomplishment, error) {
	const q = `SELECT ` + accomplishmentColumns + ` FROM accomplishments ORDER BY id`
	return r.queryMany(ctx, q)
}

// ListByUser returns a user's accomplishments ordered by id.
func (r *AccomplishmentRepo) ListByUser(ctx context.Context, userID int64) ([]model.Accomplishment, error) {
	const q = `SELECT ` + accomplishmentColumns + ` FROM accomplishments WHERE user_id=$1 ORDER BY id`
	return r.queryMany(ctx, q, userID)
}

func (r *AccomplishmentRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Accomplishment, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Accomplishment
	for rows.Next() {
		var a model.Accomplishment
		if err := rows.Scan(&a.ID, &a.UserID, &a.ChallengeID, &a.Validated, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update persists the validated flag and challenge reference.
func (r *AccomplishmentRepo) Update(ctx context.Context, a *model.Accomplishment) error {
	const q = `
UPDATE accomplishments SET challenge_id=$2, validated=$3 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, a.ID, a.ChallengeID, a.Validated)
	if err != nil {
		if isForeignKeyViolation(err) {
			return errs.ErrBadRequest
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an accomplishment row.
func (r *AccomplishmentRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM accomplishments WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
