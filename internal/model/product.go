package model

import (
	"time"

	"github.com/deppfellow/shoppingcart/internal/validation"
)

type Product struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     int32     `json:"price" db:"price"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AddProductRequest takes the price as int32 so values past the integer
// range fail at decode time.
type AddProductRequest struct {
	Name     string `json:"name" validate:"notblank" msg:"name must not be blank"`
	Price    int32  `json:"price" validate:"gt=0" msg:"price must be a positive integer"`
	ImageURL string `json:"imageUrl" validate:"notblank" msg:"image url must not be blank"`
}

func (r *AddProductRequest) Validate() error {
	return validation.Struct(r)
}

type ProductIDRequest struct {
	ProductID int64 `param:"productId" json:"-" validate:"gt=0" msg:"product id must be a positive integer"`
}

func (r *ProductIDRequest) Validate() error {
	return validation.Struct(r)
}
