package repository

import (
	"context"
	"time"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create places an order in one transaction: the order row, one detail per
// line with the product of its cart item, then removal of those cart items.
// A cart item that is gone or owned by someone else aborts the order with
// errs.ErrNotInMemberCartItem.
func (r *OrderRepository) Create(ctx context.Context, memberID int64, lines []model.OrderLine) (int64, error) {
	var orderID int64

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO orders (member_id) VALUES ($1) RETURNING id`, memberID,
		).Scan(&orderID); err != nil {
			return errors.Wrap(err, "insert order")
		}

		cartItemIDs := make([]int64, 0, len(lines))
		for _, line := range lines {
			tag, err := tx.Exec(ctx, `
				INSERT INTO orders_details (order_id, product_id, quantity)
				SELECT $1, product_id, $2 FROM cart_items WHERE id = $3 AND member_id = $4`,
				orderID, line.Quantity, line.CartItemID, memberID,
			)
			if err != nil {
				return errors.Wrap(err, "insert order detail")
			}
			if tag.RowsAffected() == 0 {
				return errs.ErrNotInMemberCartItem
			}
			cartItemIDs = append(cartItemIDs, line.CartItemID)
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM cart_items WHERE member_id = $1 AND id = ANY($2)`, memberID, cartItemIDs,
		); err != nil {
			return errors.Wrap(err, "delete ordered cart items")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return orderID, nil
}

type orderDetailRow struct {
	OrderID   int64     `db:"order_id"`
	MemberID  int64     `db:"member_id"`
	OrderedAt time.Time `db:"ordered_at"`
	model.OrderDetail
}

const orderDetailSelect = `
	SELECT o.id AS order_id, o.member_id, o.ordered_at,
	       d.product_id, p.name, p.price, p.image_url, d.quantity
	FROM orders o
	JOIN orders_details d ON d.order_id = o.id
	JOIN products p ON p.id = d.product_id`

// FindByID returns the order only when it belongs to memberID.
func (r *OrderRepository) FindByID(ctx context.Context, memberID, orderID int64) (*model.Order, error) {
	orders, err := r.query(ctx, orderDetailSelect+` WHERE o.id = $1 AND o.member_id = $2 ORDER BY d.id`, orderID, memberID)
	if err != nil {
		return nil, errors.Wrap(err, "find order")
	}
	if len(orders) == 0 {
		return nil, errors.Wrap(pgx.ErrNoRows, "find order")
	}
	return &orders[0], nil
}

func (r *OrderRepository) FindByMemberID(ctx context.Context, memberID int64) ([]model.Order, error) {
	orders, err := r.query(ctx, orderDetailSelect+` WHERE o.member_id = $1 ORDER BY o.id, d.id`, memberID)
	if err != nil {
		return nil, errors.Wrap(err, "find orders")
	}
	return orders, nil
}

// query folds detail rows, sorted by order, into orders.
func (r *OrderRepository) query(ctx context.Context, sql string, args ...any) ([]model.Order, error) {
	rows, _ := r.pool.Query(ctx, sql, args...)
	details, err := pgx.CollectRows(rows, pgx.RowToStructByName[orderDetailRow])
	if err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0)
	for _, d := range details {
		if n := len(orders); n == 0 || orders[n-1].ID != d.OrderID {
			orders = append(orders, model.Order{
				ID:        d.OrderID,
				MemberID:  d.MemberID,
				OrderedAt: d.OrderedAt,
			})
		}
		last := &orders[len(orders)-1]
		last.Details = append(last.Details, d.OrderDetail)
	}
	return orders, nil
}
