// Package repository holds the SQL behind the services.
//
// Lookups that match nothing return an error wrapping pgx.ErrNoRows.
package repository

import (
	"github.com/deppfellow/shoppingcart/internal/server"
)

// Repositories groups every repository so they are built once at startup.
type Repositories struct {
	Member       *MemberRepository
	Product      *ProductRepository
	ProductCache *ProductCache
	Cart         *CartRepository
	Order        *OrderRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Member:       NewMemberRepository(s.DB.Pool),
		Product:      NewProductRepository(s.DB.Pool),
		ProductCache: NewProductCache(s.Redis, s.Config.Redis.ProductCacheTTL, s.Logger),
		Cart:         NewCartRepository(s.DB.Pool),
		Order:        NewOrderRepository(s.DB.Pool),
	}
}
