package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// execOne runs a statement that must touch exactly one row; touching none
// reports pgx.ErrNoRows.
func execOne(ctx context.Context, db execer, op, query string, args ...any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, op)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, op)
	}
	return nil
}
