package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/model"
)

// GoodiesRepo implements GoodiesRepository using PostgreSQL.
type GoodiesRepo struct{ db *DB }

// NewGoodiesRepo constructs a goodies repository.
func NewGoodiesRepo(db *DB) *GoodiesRepo { return &GoodiesRepo{db: db} }

const goodiesColumns = `id, name, price, stock, bought, buy_limit, created_at`

// Create inserts a goodies row and returns the generated id.
func (r *GoodiesRepo) Create(ctx context.Context, g *model.Goodies) (int64, error) {
	const q = `
INSERT INTO goodies (name, price, stock, buy_limit)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var id int64
	if err := r.db.Pool.QueryRow(ctx, q, g.Name, g.Price, g.Stock, g.BuyLimit).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID selects a goodies item by id.
func (r *GoodiesRepo) GetByID(ctx context.Context, id int64) (*model.Goodies, error) {
	const q = `SELECT ` + goodiesColumns + ` FROM goodies WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var g model.Goodies
	if err := row.Scan(&g.ID, &g.Name, &g.Price, &g.Stock, &g.Bought, &g.BuyLimit, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// List returns all goodies ordered by id.
func (r *GoodiesRepo) List(ctx context.Context) ([]model.Goodies, error) {
	const q = `SELECT ` + goodiesColumns + ` FROM goodies ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Goodies
	for rows.Next() {
		var g model.Goodies
		if err := rows.Scan(&g.ID, &g.Name, &g.Price, &g.Stock, &g.Bought, &g.BuyLimit, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Update persists name, price, stock, and buy limit. The bought counter is
// owned by the purchase transaction and is not written here.
func (r *GoodiesRepo) Update(ctx context.Context, g *model.Goodies) error {
	const q = `
UPDATE goodies SET name=$2, price=$3, stock=$4, buy_limit=$5 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, g.ID, g.Name, g.Price, g.Stock, g.BuyLimit)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a goodies row.
func (r *GoodiesRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM goodies WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
