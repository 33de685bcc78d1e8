package repository

import (
	"context"

	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

const cartItemSelect = `
	SELECT c.id, c.member_id, c.product_id, p.name, p.price, p.image_url, c.quantity, c.created_at
	FROM cart_items c
	JOIN products p ON p.id = c.product_id`

func (r *CartRepository) FindByMemberID(ctx context.Context, memberID int64) ([]model.CartItem, error) {
	rows, _ := r.pool.Query(ctx, cartItemSelect+` WHERE c.member_id = $1 ORDER BY c.id`, memberID)
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CartItem])
	if err != nil {
		return nil, errors.Wrap(err, "find cart items")
	}
	return items, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id int64) (*model.CartItem, error) {
	rows, _ := r.pool.Query(ctx, cartItemSelect+` WHERE c.id = $1`, id)
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.CartItem])
	if err != nil {
		return nil, errors.Wrap(err, "find cart item")
	}
	return item, nil
}

// Add puts a product in the member's cart. A product already in the cart
// has its quantity increased instead.
func (r *CartRepository) Add(ctx context.Context, memberID, productID int64, quantity int) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO cart_items (member_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (member_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id`,
		memberID, productID, quantity,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "add cart item")
	}
	return id, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return execOne(ctx, r.pool, "update cart item quantity",
		`UPDATE cart_items SET quantity = $2 WHERE id = $1`, id, quantity)
}

func (r *CartRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, "delete cart item", `DELETE FROM cart_items WHERE id = $1`, id)
}
