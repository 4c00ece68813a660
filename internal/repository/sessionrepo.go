package repository

import (
	"context"

	"github.com/acoudray/clubhouse/internal/model"
)

// SessionRepository stores live sessions keyed by token digest. Deleting a
// session revokes the matching token regardless of its remaining validity.
type SessionRepository interface {
	// Create inserts a session bound to a user.
	Create(ctx context.Context, s *model.Session) error
	// GetByDigest loads the session stored under a token digest.
	GetByDigest(ctx context.Context, digest string) (*model.Session, error)
	// DeleteByDigest removes the session stored under a token digest.
	DeleteByDigest(ctx context.Context, digest string) error
}
