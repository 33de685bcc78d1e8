package model

import (
	"time"

	"github.com/deppfellow/shoppingcart/internal/validation"
)

// CartItem is a product in a member's cart, joined with the product data.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	MemberID  int64     `json:"-" db:"member_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     int32     `json:"price" db:"price"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type AddCartItemRequest struct {
	ProductID *int64 `json:"productId" validate:"required,gt=0" msg:"product id must not be empty"`
	Quantity  int    `json:"quantity" validate:"min=1" msg:"quantity must be at least 1"`
}

func (r *AddCartItemRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateCartItemRequest struct {
	CartItemID int64 `param:"cartItemId" json:"-" validate:"gt=0" msg:"cart item id must be a positive integer"`
	Quantity   int   `json:"quantity" validate:"min=1" msg:"quantity must be at least 1"`
}

func (r *UpdateCartItemRequest) Validate() error {
	return validation.Struct(r)
}

type CartItemIDRequest struct {
	CartItemID int64 `param:"cartItemId" json:"-" validate:"gt=0" msg:"cart item id must be a positive integer"`
}

func (r *CartItemIDRequest) Validate() error {
	return validation.Struct(r)
}
