package service

import (
	"context"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/model"
)

type ProductService struct {
	products ProductStore
	cache    ProductCache
}

func NewProductService(products ProductStore, cache ProductCache) *ProductService {
	return &ProductService{products: products, cache: cache}
}

func (s *ProductService) AddProduct(ctx context.Context, name string, price int32, imageURL string) (int64, error) {
	return s.products.Create(ctx, name, price, imageURL)
}

func (s *ProductService) FindProducts(ctx context.Context) ([]model.Product, error) {
	return s.products.FindAll(ctx)
}

// FindProduct reads through the cache.
func (s *ProductService) FindProduct(ctx context.Context, id int64) (*model.Product, error) {
	if product := s.cache.Get(ctx, id); product != nil {
		return product, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, errs.ErrProductNotFound)
	}

	s.cache.Set(ctx, product)
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return notFound(err, errs.ErrProductNotFound)
	}

	s.cache.Invalidate(ctx, id)
	return nil
}
