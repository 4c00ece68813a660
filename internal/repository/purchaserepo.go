package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/acoudray/clubhouse/internal/model"
)

// PurchaseRepository persists purchases. Create and Refund run their whole
// read-check-write sequence inside one database transaction so the stock,
// wallet, and buy-limit invariants hold under concurrent requests.
type PurchaseRepository interface {
	// Create atomically checks buy limit, wallet, and stock (in that order),
	// then increments goodies.bought, debits the wallet, and inserts the
	// purchase row. Missing user or goodies yields errs.ErrBadRequest.
	Create(ctx context.Context, id uuid.UUID, userID, goodiesID int64) (*model.Purchase, error)
	// Refund atomically credits the price back to the buyer's wallet and
	// deletes the purchase row. goodies.bought is left untouched.
	Refund(ctx context.Context, id uuid.UUID) error
	// SetDelivered flips the delivered flag.
	SetDelivered(ctx context.Context, id uuid.UUID, delivered bool) error
	// GetByID loads a purchase by id.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	// List returns all purchases ordered by creation time.
	List(ctx context.Context) ([]model.Purchase, error)
	// ListByUser returns a user's purchases ordered by creation time.
	ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error)
	// CountBy counts a user's purchases of one goodies item.
	CountBy(ctx context.Context, userID, goodiesID int64) (int64, error)
}
