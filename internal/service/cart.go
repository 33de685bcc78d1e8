package service

import (
	"context"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/model"
)

type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) FindCartItems(ctx context.Context, memberID int64) ([]model.CartItem, error) {
	return s.carts.FindByMemberID(ctx, memberID)
}

// AddCartItem adds quantity to the product's line in the cart, creating
// the line when the product is not in the cart yet.
func (s *CartService) AddCartItem(ctx context.Context, memberID, productID int64, quantity int) (int64, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return 0, notFound(err, errs.ErrProductNotFound)
	}
	return s.carts.Add(ctx, memberID, productID, quantity)
}

func (s *CartService) UpdateQuantity(ctx context.Context, memberID, cartItemID int64, quantity int) error {
	if _, err := s.owned(ctx, memberID, cartItemID); err != nil {
		return err
	}
	return notFound(s.carts.UpdateQuantity(ctx, cartItemID, quantity), errs.ErrNotInMemberCartItem)
}

func (s *CartService) DeleteCartItem(ctx context.Context, memberID, cartItemID int64) error {
	if _, err := s.owned(ctx, memberID, cartItemID); err != nil {
		return err
	}
	return notFound(s.carts.Delete(ctx, cartItemID), errs.ErrNotInMemberCartItem)
}

// owned returns the cart item if it sits in the member's cart. Unknown items
// and other members' items are reported the same way.
func (s *CartService) owned(ctx context.Context, memberID, cartItemID int64) (*model.CartItem, error) {
	item, err := s.carts.FindByID(ctx, cartItemID)
	if err != nil {
		return nil, notFound(err, errs.ErrNotInMemberCartItem)
	}
	if item.MemberID != memberID {
		return nil, errs.ErrNotInMemberCartItem
	}
	return item, nil
}
