package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
)

// SessionRepo implements SessionRepository using PostgreSQL.
type SessionRepo struct{ db *DB }

// NewSessionRepo constructs a session repository.
func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

// Create inserts a session row.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	const q = `
INSERT INTO sessions (id, token_digest, user_id)
VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, q, s.ID, s.TokenDigest, s.UserID)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByDigest selects the session stored under a token digest.
func (r *SessionRepo) GetByDigest(ctx context.Context, digest string) (*model.Session, error) {
	const q = `
SELECT id, token_digest, user_id, created_at
FROM sessions WHERE token_digest=$1`
	row := r.db.Pool.QueryRow(ctx, q, digest)
	var s model.Session
	if err := row.Scan(&s.ID, &s.TokenDigest, &s.UserID, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// DeleteByDigest removes the session stored under a token digest.
func (r *SessionRepo) DeleteByDigest(ctx context.Context, digest string) error {
	const q = `DELETE FROM sessions WHERE token_digest=$1`
	tag, err := r.db.Pool.Exec(ctx, q, digest)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
