// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/acoudray/clubhouse/internal/model"
)

// UserRepository provides CRUD access for club member accounts.
type UserRepository interface {
	// Create inserts a new user and returns its id.
	Create(ctx context.Context, email, passwordHash string) (int64, error)
	// GetByID loads a user by id.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns all users ordered by id.
	List(ctx context.Context) ([]model.User, error)
	// Update persists mutable fields (email, privilege, wallet).
	Update(ctx context.Context, u *model.User) error
	// Delete removes a user by id.
	Delete(ctx context.Context, id int64) error
}
