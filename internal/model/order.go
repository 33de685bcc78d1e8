package model

import (
	"errors"
	"time"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/validation"
	"github.com/go-playground/validator/v10"
)

type Order struct {
	ID        int64         `json:"id" db:"id"`
	MemberID  int64         `json:"-" db:"member_id"`
	OrderedAt time.Time     `json:"orderedAt" db:"ordered_at"`
	Details   []OrderDetail `json:"orderDetails" db:"-"`
}

// OrderDetail is one ordered product with the quantity taken from the cart.
type OrderDetail struct {
	ProductID int64  `json:"productId" db:"product_id"`
	Name      string `json:"name" db:"name"`
	Price     int32  `json:"price" db:"price"`
	ImageURL  string `json:"imageUrl" db:"image_url"`
	Quantity  int    `json:"quantity" db:"quantity"`
}

// OrderLine asks to order the product in a cart item.
type OrderLine struct {
	CartItemID int64
	Quantity   int
}

type OrderLineRequest struct {
	CartID   *int64 `json:"cartId" validate:"required,gt=0" msg:"cart id must not be empty"`
	Quantity int    `json:"quantity" validate:"min=1" msg:"quantity must be at least 1"`
}

// PlaceOrderRequest is the JSON array body of POST /api/members/me/orders.
type PlaceOrderRequest []OrderLineRequest

// Validate checks every line, then that no cart item is ordered twice.
func (r *PlaceOrderRequest) Validate() error {
	if r == nil || len(*r) == 0 {
		return validation.CustomValidationErrors{{Field: "orders", Message: errs.ErrEmptyOrder.Message}}
	}

	var all validator.ValidationErrors
	for i := range *r {
		err := validation.Struct(&(*r)[i])
		if err == nil {
			continue
		}

		var lineErrors validator.ValidationErrors
		if !errors.As(err, &lineErrors) {
			return err
		}
		all = append(all, lineErrors...)
	}

	if len(all) > 0 {
		return all
	}

	seen := make(map[int64]struct{}, len(*r))
	for _, l := range *r {
		if _, ok := seen[*l.CartID]; ok {
			return validation.CustomValidationErrors{{Field: "cartId", Message: errs.ErrDuplicateOrderItem.Message}}
		}
		seen[*l.CartID] = struct{}{}
	}
	return nil
}

// Lines converts a validated request into service input.
func (r *PlaceOrderRequest) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(*r))
	for _, l := range *r {
		lines = append(lines, OrderLine{CartItemID: *l.CartID, Quantity: l.Quantity})
	}
	return lines
}

type OrderIDRequest struct {
	OrderID int64 `param:"orderId" json:"-" validate:"gt=0" msg:"order id must be a positive integer"`
}

func (r *OrderIDRequest) Validate() error {
	return validation.Struct(r)
}
