package service

import (
	"context"
	"errors"

	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
	"github.com/acoudray/clubhouse/internal/repository"
)

// AuthzService compares a user's privilege against a required tier, with an
// ownership bypass for the resources a user holds.
type AuthzService interface {
	// Authorize fails with errs.ErrForbidden when the user's privilege is
	// below required.
	Authorize(ctx context.Context, userID int64, required model.Privilege) error
	// AuthorizeOwnerOr succeeds without any privilege lookup when actor owns
	// the resource; otherwise it behaves as Authorize.
	AuthorizeOwnerOr(ctx context.Context, actorID, ownerID int64, required model.Privilege) error
}

type AuthzServiceImpl struct {
	users repository.UserRepository
}

// NewAuthzService constructs AuthzService.
func NewAuthzService(users repository.UserRepository) *AuthzServiceImpl {
	return &AuthzServiceImpl{users: users}
}

// Authorize loads the user's privilege and compares it to required.
func (s *AuthzServiceImpl) Authorize(ctx context.Context, userID int64, required model.Privilege) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrUnauthorized
		}
		return err
	}
	if u.Privilege < required {
		return errs.ErrForbidden
	}
	return nil
}

// AuthorizeOwnerOr skips the privilege check entirely for the resource owner.
func (s *AuthzServiceImpl) AuthorizeOwnerOr(ctx context.Context, actorID, ownerID int64, required model.Privilege) error {
	if actorID == ownerID {
		return nil
	}
	return s.Authorize(ctx, actorID, required)
}
