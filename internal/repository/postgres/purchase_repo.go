package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
)

// PurchaseRepo implements PurchaseRepository using PostgreSQL.
type PurchaseRepo struct{ db *DB }

// NewPurchaseRepo constructs a purchase repository.
func NewPurchaseRepo(db *DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

const purchaseColumns = `id, user_id, goodies_id, delivered, created_at`

// Create executes the whole purchase as one transaction. The user and goodies
// rows are locked first, so two racing purchases for the last unit of stock,
// a shared buy-limit slot, or a wallet that cannot cover both serialize and
// at most the truly available number succeed. Check order is contractual:
// buy limit, then wallet, then stock.
func (r *PurchaseRepo) Create(
	ctx context.Context, id uuid.UUID, userID, goodiesID int64,
) (p *model.Purchase, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
			p = nil
		}
	}()

	const lockUser = `SELECT wallet FROM users WHERE id=$1 FOR UPDATE`
	var wallet int64
	if err = tx.QueryRow(ctx, lockUser, userID).Scan(&wallet); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrBadRequest
		}
		return nil, err
	}

	const lockGoodies = `SELECT price, stock, bought, buy_limit FROM goodies WHERE id=$1 FOR UPDATE`
	var price, stock, bought, buyLimit int64
	if err = tx.QueryRow(ctx, lockGoodies, goodiesID).Scan(&price, &stock, &bought, &buyLimit); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrBadRequest
		}
		return nil, err
	}

	const countOwned = `SELECT COUNT(*) FROM purchases WHERE user_id=$1 AND goodies_id=$2`
	var owned int64
	if err = tx.QueryRow(ctx, countOwned, userID, goodiesID).Scan(&owned); err != nil {
		return nil, err
	}

	switch {
	case owned >= buyLimit:
		err = errs.ErrBuyLimitReached
		return nil, err
	case wallet < price:
		err = errs.ErrInsufficientWallet
		return nil, err
	case bought >= stock:
		err = errs.ErrOutOfStock
		return nil, err
	}

	if _, err = tx.Exec(ctx, `UPDATE goodies SET bought=bought+1 WHERE id=$1`, goodiesID); err != nil {
		return nil, err
	}
	if _, err = tx.Exec(ctx, `UPDATE users SET wallet=wallet-$2 WHERE id=$1`, userID, price); err != nil {
		return nil, err
	}

	const ins = `
INSERT INTO purchases (id, user_id, goodies_id)
VALUES ($1, $2, $3)
RETURNING created_at`
	p = &model.Purchase{ID: id, UserID: userID, GoodiesID: goodiesID}
	if err = tx.QueryRow(ctx, ins, id, userID, goodiesID).Scan(&p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// Refund credits the goodies price back to the buyer and deletes the purchase
// row in one transaction. The bought counter is cumulative sales and stays put.
func (r *PurchaseRepo) Refund(ctx context.Context, id uuid.UUID) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const sel = `SELECT user_id, goodies_id FROM purchases WHERE id=$1 FOR UPDATE`
	var userID, goodiesID int64
	if err = tx.QueryRow(ctx, sel, id).Scan(&userID, &goodiesID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	var price int64
	scanErr := tx.QueryRow(ctx, `SELECT price FROM goodies WHERE id=$1`, goodiesID).Scan(&price)
	switch {
	case scanErr == nil:
		if _, err = tx.Exec(ctx, `UPDATE users SET wallet=wallet+$2 WHERE id=$1`, userID, price); err != nil {
			return err
		}
	case errors.Is(scanErr, pgx.ErrNoRows):
		// goodies gone: nothing to credit, still delete the purchase
	default:
		err = scanErr
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM purchases WHERE id=$1`, id)
	return err
}

// SetDelivered flips the delivered flag after an existence check.
func (r *PurchaseRepo) SetDelivered(ctx context.Context, id uuid.UUID, delivered bool) error {
	const q = `UPDATE purchases SET delivered=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, delivered)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// GetByID selects a purchase by id.
func (r *PurchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	const q = `SELECT ` + purchaseColumns + ` FROM purchases WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var p model.Purchase
	if err := row.Scan(&p.ID, &p.UserID, &p.GoodiesID, &p.Delivered, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all purchases ordered by creation time.
func (r *PurchaseRepo) List(ctx context.Context) ([]model.Purchase, error) {
	const q = `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY created_at`
	return r.queryMany(ctx, q)
}

// ListByUser returns a user's purchases ordered by creation time.
func (r *PurchaseRepo) ListByUser(ctx context.Context, userID int64) ([]model.Purchase, error) {
	const q = `SELECT ` + purchaseColumns + ` FROM purchases WHERE user_id=$1 ORDER BY created_at`
	return r.queryMany(ctx, q, userID)
}

func (r *PurchaseRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Purchase, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.GoodiesID, &p.Delivered, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountBy counts a user's purchases of one goodies item.
func (r *PurchaseRepo) CountBy(ctx context.Context, userID, goodiesID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM purchases WHERE user_id=$1 AND goodies_id=$2`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q, userID, goodiesID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
