package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
)

// ChallengeRepo implements ChallengeRepository using PostgreSQL.
type ChallengeRepo struct{ db *DB }

// NewChallengeRepo constructs a challenge repository.
func NewChallengeRepo(db *DB) *ChallengeRepo { return &ChallengeRepo{db: db} }

// Create inserts a challenge row and returns the generated id.
func (r *ChallengeRepo) Create(ctx context.Context, c *model.Challenge) (int64, error) {
	const q = `
INSERT INTO challenges (title, description, reward)
VALUES ($1, $2, $3)
RETURNING id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q, c.Title, c.Description, c.Reward).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID selects a challenge by id.
func (r *ChallengeRepo) GetByID(ctx context.Context, id int64) (*model.Challenge, error) {
	const q = `
SELECT id, title, description, reward, created_at
FROM challenges WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var c model.Challenge
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Reward, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all challenges ordered by id.
func (r *ChallengeRepo) List(ctx context.Context) ([]model.Challenge, error) {
	const q = `
SELECT id, title, description, reward, created_at
FROM challenges ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Challenge
	for rows.Next() {
		var c model.Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Reward, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update persists title, description, and reward.
func (r *ChallengeRepo) Update(ctx context.Context, c *model.Challenge) error {
	const q = `
UPDATE challenges SET title=$2, description=$3, reward=$4 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, c.ID, c.Title, c.Description, c.Reward)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a challenge row.
func (r *ChallengeRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM challenges WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
