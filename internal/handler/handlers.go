package handler

import (
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/deppfellow/shoppingcart/internal/service"
)

type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Auth    *AuthHandler
	Member  *MemberHandler
	Product *ProductHandler
	Cart    *CartHandler
	Order   *OrderHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Auth:    NewAuthHandler(s, services.Auth),
		Member:  NewMemberHandler(s, services.Member),
		Product: NewProductHandler(s, services.Product),
		Cart:    NewCartHandler(s, services.Cart),
		Order:   NewOrderHandler(s, services.Order),
	}
}
