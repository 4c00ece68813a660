package repository

import (
	"context"

	"github.com/acoudray/clubhouse/internal/model"
)

// ChallengeRepository provides CRUD access for club challenges.
type ChallengeRepository interface {
	// Create inserts a challenge and returns its id.
	Create(ctx context.Context, c *model.Challenge) (int64, error)
	// GetByID loads a challenge by id.
	GetByID(ctx context.Context, id int64) (*model.Challenge, error)
	// List returns all challenges ordered by id.
	List(ctx context.Context) ([]model.Challenge, error)
	// Update persists mutable fields.
	Update(ctx context.Context, c *model.Challenge) error
	// Delete removes a challenge by id.
	Delete(ctx context.Context, id int64) error
}

// AccomplishmentRepository provides CRUD access for challenge accomplishments.
type AccomplishmentRepository interface {
	// Create inserts an accomplishment and returns its id.
	Create(ctx context.Context, a *model.Accomplishment) (int64, error)
	// GetByID loads an accomplishment by id.
	GetByID(ctx context.Context, id int64) (*model.Accomplishment, error)
	// List returns all accomplishments ordered by id.
	List(ctx context.Context) ([]model.Accomplishment, error)
	// ListByUser returns a user's accomplishments ordered by id.
	ListByUser(ctx context.Context, userID int64) ([]model.Accomplishment, error)
	// Update persists mutable fields.
	Update(ctx context.Context, a *model.Accomplishment) error
	// Delete removes an accomplishment by id.
	Delete(ctx context.Context, id int64) error
}

// GoodiesRepository provides CRUD access for purchasable goodies. Stock and
// bought counters are mutated only through PurchaseRepository.
type GoodiesRepository interface {
	// Create inserts a goodies item and returns its id.
	Create(ctx context.Context, g *model.Goodies) (int64, error)
	// GetByID loads a goodies item by id.
	GetByID(ctx context.Context, id int64) (*model.Goodies, error)
	// List returns all goodies ordered by id.
	List(ctx context.Context) ([]model.Goodies, error)
	// Update persists descriptive fields (name, price, stock, buy limit).
	Update(ctx context.Context, g *model.Goodies) error
	// Delete removes a goodies item by id.
	Delete(ctx context.Context, id int64) error
}
