package service

import (
	"context"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/lib/event"
	"github.com/deppfellow/shoppingcart/internal/lib/job"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/rs/zerolog"
)

type OrderService struct {
	orders    OrderStore
	carts     *CartService
	members   MemberStore
	publisher EventPublisher
	mailer    Mailer
	logger    *zerolog.Logger
}

func NewOrderService(
	orders OrderStore,
	carts *CartService,
	members MemberStore,
	publisher EventPublisher,
	mailer Mailer,
	logger *zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		members:   members,
		publisher: publisher,
		mailer:    mailer,
		logger:    logger,
	}
}

// AddOrder turns cart items into an order. Every line must point at an item
// in the member's cart. Once the order is stored, the order.placed event and
// the confirmation email are sent on a best effort basis.
func (s *OrderService) AddOrder(ctx context.Context, memberID int64, lines []model.OrderLine) (int64, error) {
	if len(lines) == 0 {
		return 0, errs.ErrEmptyOrder
	}

	seen := make(map[int64]struct{}, len(lines))
	items := make([]*model.CartItem, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.CartItemID]; ok {
			return 0, errs.ErrDuplicateOrderItem
		}
		seen[line.CartItemID] = struct{}{}

		item, err := s.carts.owned(ctx, memberID, line.CartItemID)
		if err != nil {
			return 0, err
		}
		items = append(items, item)
	}

	orderID, err := s.orders.Create(ctx, memberID, lines)
	if err != nil {
		return 0, err
	}

	s.announce(ctx, memberID, orderID, lines, items)
	return orderID, nil
}

func (s *OrderService) announce(ctx context.Context, memberID, orderID int64, lines []model.OrderLine, items []*model.CartItem) {
	log := loggerFor(ctx, s.logger).With().Int64("order_id", orderID).Int64("member_id", memberID).Logger()

	placed := event.OrderPlaced{OrderID: orderID, MemberID: memberID}
	confirmation := job.OrderConfirmationPayload{OrderID: orderID}
	for i, line := range lines {
		placed.Items = append(placed.Items, event.OrderPlacedItem{
			ProductID: items[i].ProductID,
			Quantity:  line.Quantity,
		})
		confirmation.Items = append(confirmation.Items, job.OrderConfirmationItem{
			Name:     items[i].Name,
			Quantity: line.Quantity,
			Price:    items[i].Price,
		})
	}

	if err := s.publisher.PublishOrderPlaced(ctx, placed); err != nil {
		log.Warn().Err(err).Msg("failed to publish order placed event")
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		log.Warn().Err(err).Msg("skipping order confirmation, member lookup failed")
		return
	}
	confirmation.To = member.Email
	confirmation.Name = member.Name

	if err := s.mailer.EnqueueOrderConfirmation(ctx, confirmation); err != nil {
		log.Warn().Err(err).Msg("failed to enqueue order confirmation email")
	}
}

// FindOrder hides other members' orders behind the not-found error.
func (s *OrderService) FindOrder(ctx context.Context, memberID, orderID int64) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, memberID, orderID)
	if err != nil {
		return nil, notFound(err, errs.ErrOrderNotFound)
	}
	return order, nil
}

func (s *OrderService) FindOrders(ctx context.Context, memberID int64) ([]model.Order, error) {
	return s.orders.FindByMemberID(ctx, memberID)
}
