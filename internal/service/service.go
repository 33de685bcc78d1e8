// Package service contains the business rules.
//
// Services receive validated input from handlers and reach the database
// through the small store interfaces declared here, so each one can be
// exercised against in-memory fakes.
package service

import (
	"context"

	"github.com/deppfellow/shoppingcart/internal/lib/event"
	"github.com/deppfellow/shoppingcart/internal/lib/job"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/rs/zerolog"
)

type MemberStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateName(ctx context.Context, id int64, name string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

type ProductStore interface {
	Create(ctx context.Context, name string, price int32, imageURL string) (int64, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductCache never fails; a broken cache behaves like an empty one.
type ProductCache interface {
	Get(ctx context.Context, id int64) *model.Product
	Set(ctx context.Context, product *model.Product)
	Invalidate(ctx context.Context, id int64)
}

type CartStore interface {
	FindByMemberID(ctx context.Context, memberID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, id int64) (*model.CartItem, error)
	Add(ctx context.Context, memberID, productID int64, quantity int) (int64, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
}

type OrderStore interface {
	Create(ctx context.Context, memberID int64, lines []model.OrderLine) (int64, error)
	FindByID(ctx context.Context, memberID, orderID int64) (*model.Order, error)
	FindByMemberID(ctx context.Context, memberID int64) ([]model.Order, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(hash, plain string) bool
}

// Mailer queues transactional emails.
type Mailer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
	EnqueueOrderConfirmation(ctx context.Context, payload job.OrderConfirmationPayload) error
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, e event.OrderPlaced) error
}

// loggerFor prefers the request-scoped logger carried by ctx.
func loggerFor(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
