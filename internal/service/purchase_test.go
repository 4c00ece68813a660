package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
	"github.com/acoudray/clubhouse/internal/repository"
)

// fakePurchases mirrors the repository's single-transaction contract: the
// mutex stands in for row locks, so concurrent Create calls serialize exactly
// as they do against Postgres.
type fakePurchases struct {
	mu        sync.Mutex
	users     map[int64]*model.User
	goodies   map[int64]*model.Goodies
	purchases map[uuid.UUID]*model.Purchase
}

var _ repository.PurchaseRepository = (*fakePurchases)(nil)

func newFakePurchases() *fakePurchases {
	return &fakePurchases{
		users:     map[int64]*model.User{},
		goodies:   map[int64]*model.Goodies{},
		purchases: map[uuid.UUID]*model.Purchase{},
	}
}

func (f *fakePurchases) countLocked(userID, goodiesID int64) int64 {
	var n int64
	for _, p := range f.purchases {
		if p.UserID == userID && p.GoodiesID == goodiesID {
			n++
		}
	}
	return n
}

func (f *fakePurchases) Create(_ context.Context, id uuid.UUID, userID, goodiesID int64) (*model.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return nil, errs.ErrBadRequest
	}
	g, ok := f.goodies[goodiesID]
	if !ok {
		return nil, errs.ErrBadRequest
	}
	switch {
	case f.countLocked(userID, goodiesID) >= g.BuyLimit:
		return nil, errs.ErrBuyLimitReached
	case u.Wallet < g.Price:
		return nil, errs.ErrInsufficientWallet
	case g.Bought >= g.Stock:
		return nil, errs.ErrOutOfStock
	}
	g.Bought++
	u.Wallet -= g.Price
	p := &model.Purchase{ID: id, UserID: userID, GoodiesID: goodiesID}
	f.purchases[id] = p
	c := *p
	return &c, nil
}

func (f *fakePurchases) Refund(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.purchases[id]
	if !ok {
		return errs.ErrNotFound
	}
	if g, ok := f.goodies[p.GoodiesID]; ok {
		if u, ok := f.users[p.UserID]; ok {
			u.Wallet += g.Price
		}
	}
	delete(f.purchases, id)
	return nil
}

func (f *fakePurchases) SetDelivered(_ context.Context, id uuid.UUID, delivered bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.purchases[id]
	if !ok {
		return errs.ErrNotFound
	}
	p.Delivered = delivered
	return nil
}

func (f *fakePurchases) GetByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.purchases[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakePurchases) List(_ context.Context) ([]model.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Purchase
	for _, p := range f.purchases {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePurchases) ListByUser(_ context.Context, userID int64) ([]model.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Purchase
	for _, p := range f.purchases {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePurchases) CountBy(_ context.Context, userID, goodiesID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countLocked(userID, goodiesID), nil
}

func TestPurchase_Create_ValidatesIDs(t *testing.T) {
	t.Parallel()
	s := NewPurchaseService(newFakePurchases())

	if _, err := s.Create(context.Background(), 0, 1); !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("zero user id: want ErrBadRequest, got %v", err)
	}
	if _, err := s.Create(context.Background(), 1, 0); !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("zero goodies id: want ErrBadRequest, got %v", err)
	}
}

func TestPurchase_Create_MissingReferentsAreBadRequest(t *testing.T) {
	t.Parallel()
	repo := newFakePurchases()
	s := NewPurchaseService(repo)

	if _, err := s.Create(context.Background(), 1, 1); !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("missing user/goodies: want ErrBadRequest, got %v", err)
	}
}

func TestPurchase_CheckOrdering_BuyLimitBeatsWallet(t *testing.T) {
	t.Parallel()
	repo := newFakePurchases()
	repo.users[1] = &model.User{ID: 1, Wallet: 100}
	repo.goodies[2] = &model.Goodies{ID: 2, Price: 100, Stock: 10, BuyLimit: 1}
	s := NewPurchaseService(repo)
	ctx := context.Background()

	if _, err := s.Create(ctx, 1, 2); err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	if repo.users[1].Wallet != 0 {
		t.Fatalf("wallet=%d after purchase, want 0", repo.users[1].Wallet)
	}

	// wallet is now also insufficient, but the buy-limit kind must win
	if _, err := s.Create(ctx, 1, 2); !errors.Is(err, errs.ErrBuyLimitReached) {
		t.Fatalf("want ErrBuyLimitReached, got %v", err)
	}
}

func TestPurchase_Refund_Asymmetry(t *testing.T) {
	t.Parallel()
	repo := newFakePurchases()
	repo.users[1] = &model.User{ID: 1, Wallet: 10}
	repo.goodies[2] = &model.Goodies{ID: 2, Price: 10, Stock: 5, BuyLimit: 3}
	s := NewPurchaseService(repo)
	ctx := context.Background()

	p, err := s.Create(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.users[1].Wallet != 0 {
		t.Fatalf("wallet=%d, want 0", repo.users[1].Wallet)
	}
	if repo.goodies[2].Bought != 1 {
		t.Fatalf("bought=%d, want 1", repo.goodies[2].Bought)
	}

	if err := s.Refund(ctx, p.ID); err != nil {
		t.Fatalf("Refund: %v", err)
	}
	if repo.users[1].Wallet != 10 {
		t.Fatalf("wallet=%d after refund, want 10", repo.users[1].Wallet)
	}
	// bought is cumulative sales and must stay put
	if repo.goodies[2].Bought != 1 {
		t.Fatalf("bought=%d after refund, want 1", repo.goodies[2].Bought)
	}

	if err := s.Refund(ctx, p.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second refund: want ErrNotFound, got %v", err)
	}
}

func TestPurchase_StockRace_ExactlyOneSucceeds(t *testing.T) {
	t.Parallel()
	repo := newFakePurchases()
	repo.users[1] = &model.User{ID: 1, Wallet: 100}
	repo.users[2] = &model.User{ID: 2, Wallet: 100}
	repo.goodies[3] = &model.Goodies{ID: 3, Price: 10, Stock: 1, BuyLimit: 5}
	s := NewPurchaseService(repo)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, userID := range []int64{1, 2} {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			_, err := s.Create(context.Background(), uid, 3)
			results <- err
		}(userID)
	}
	wg.Wait()
	close(results)

	var okCount, stockCount int
	for err := range results {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, errs.ErrOutOfStock):
			stockCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 || stockCount != 1 {
		t.Fatalf("ok=%d outOfStock=%d, want exactly one of each", okCount, stockCount)
	}
	if repo.goodies[3].Bought != 1 {
		t.Fatalf("bought=%d, want 1", repo.goodies[3].Bought)
	}
}

func TestPurchase_SetDelivered(t *testing.T) {
	t.Parallel()
	repo := newFakePurchases()
	repo.users[1] = &model.User{ID: 1, Wallet: 10}
	repo.goodies[2] = &model.Goodies{ID: 2, Price: 10, Stock: 1, BuyLimit: 1}
	s := NewPurchaseService(repo)
	ctx := context.Background()

	p, err := s.Create(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.SetDelivered(ctx, p.ID, true); err != nil {
		t.Fatalf("SetDelivered: %v", err)
	}
	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Delivered {
		t.Fatalf("delivered flag not set")
	}

	if err := s.SetDelivered(ctx, uuid.Must(uuid.NewV4()), true); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown purchase: want ErrNotFound, got %v", err)
	}
}
