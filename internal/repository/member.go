package repository

import (
	"context"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/deppfellow/shoppingcart/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

const memberColumns = `id, email, name, password, created_at, updated_at`

// Create inserts a member. Losing a race on the email unique key reports
// errs.ErrDuplicateMemberEmail.
func (r *MemberRepository) Create(ctx context.Context, email, name, passwordHash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO members (email, name, password) VALUES ($1, $2, $3) RETURNING id`,
		email, name, passwordHash,
	).Scan(&id)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return 0, errs.ErrDuplicateMemberEmail
		}
		return 0, errors.Wrap(err, "insert member")
	}
	return id, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id int64) (*model.Member, error) {
	return r.findOne(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
}

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*model.Member, error) {
	return r.findOne(ctx, `SELECT `+memberColumns+` FROM members WHERE email = $1`, email)
}

func (r *MemberRepository) findOne(ctx context.Context, query string, arg any) (*model.Member, error) {
	rows, _ := r.pool.Query(ctx, query, arg)
	member, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Member])
	if err != nil {
		return nil, errors.Wrap(err, "find member")
	}
	return member, nil
}

func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM members WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "check member email")
	}
	return exists, nil
}

func (r *MemberRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.exec(ctx, "update member name",
		`UPDATE members SET name = $2, updated_at = NOW() WHERE id = $1`, id, name)
}

func (r *MemberRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.exec(ctx, "update member password",
		`UPDATE members SET password = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
}

// Delete removes the member; cart items and orders go with it.
func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, "delete member", `DELETE FROM members WHERE id = $1`, id)
}

func (r *MemberRepository) exec(ctx context.Context, op, query string, args ...any) error {
	return execOne(ctx, r.pool, op, query, args...)
}
