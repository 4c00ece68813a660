package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
	"github.com/acoudray/clubhouse/internal/repository"
)

// PurchaseService is the transactional engine behind purchases and refunds.
// All invariant checks and compensating mutations run inside the
// repository's single-transaction operations.
type PurchaseService interface {
	// Create buys one unit of a goodies item for a user.
	Create(ctx context.Context, userID, goodiesID int64) (*model.Purchase, error)
	// Refund credits the price back and deletes the purchase.
	Refund(ctx context.Context, id uuid.UUID) error
	// SetDelivered flips the delivered flag.
	SetDelivered(ctx context.Context, id uuid.UUID, delivered bool) error
	// Get loads one purchase.
	Get(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	// List returns all purchases.
	List(ctx context.Context) ([]model.Purchase, error)
	// ListByUser returns a user's purchases.
	ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error)
}

type PurchaseServiceImpl struct {
	purchases repository.PurchaseRepository
}

// NewPurchaseService constructs PurchaseService.
func NewPurchaseService(purchases repository.PurchaseRepository) *PurchaseServiceImpl {
	return &PurchaseServiceImpl{purchases: purchases}
}

// Create validates the ids and delegates the atomic buy to the repository.
func (s *PurchaseServiceImpl) Create(ctx context.Context, userID, goodiesID int64) (*model.Purchase, error) {
	if userID <= 0 || goodiesID <= 0 {
		return nil, errs.ErrBadRequest
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return s.purchases.Create(ctx, id, userID, goodiesID)
}

// Refund deletes a purchase, crediting the buyer's wallet with the goodies
// price. goodies.bought stays untouched: it counts cumulative sales.
func (s *PurchaseServiceImpl) Refund(ctx context.Context, id uuid.UUID) error {
	return s.purchases.Refund(ctx, id)
}

// SetDelivered updates the delivered flag after an existence check.
func (s *PurchaseServiceImpl) SetDelivered(ctx context.Context, id uuid.UUID, delivered bool) error {
	return s.purchases.SetDelivered(ctx, id, delivered)
}

// Get loads one purchase.
func (s *PurchaseServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	return s.purchases.GetByID(ctx, id)
}

// List returns all purchases.
func (s *PurchaseServiceImpl) List(ctx context.Context) ([]model.Purchase, error) {
	return s.purchases.List(ctx)
}

// ListByUser returns a user's purchases.
func (s *PurchaseServiceImpl) ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error) {
	return s.purchases.ListByUser(ctx, userID)
}
