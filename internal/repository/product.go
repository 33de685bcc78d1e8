package repository

import (
	"context"

	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, price, image_url, created_at`

func (r *ProductRepository) Create(ctx context.Context, name string, price int32, imageURL string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, price, image_url) VALUES ($1, $2, $3) RETURNING id`,
		name, price, imageURL,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "insert product")
	}
	return id, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	rows, _ := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Product])
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	rows, _ := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Product])
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}
	return product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.pool, "delete product", `DELETE FROM products WHERE id = $1`, id)
}
