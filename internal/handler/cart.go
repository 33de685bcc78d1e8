package handler

import (
	"github.com/deppfellow/shoppingcart/internal/middleware"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/deppfellow/shoppingcart/internal/service"
	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	Handler
	carts *service.CartService
}

func NewCartHandler(s *server.Server, carts *service.CartService) *CartHandler {
	return &CartHandler{
		Handler: NewHandler(s),
		carts:   carts,
	}
}

func (h *CartHandler) GetCartItems(c echo.Context, _ *model.EmptyRequest) ([]model.CartItem, error) {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return nil, err
	}
	return h.carts.FindCartItems(c.Request().Context(), memberID)
}

func (h *CartHandler) AddCartItem(c echo.Context, req *model.AddCartItemRequest) (*model.IDResponse, error) {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return nil, err
	}

	id, err := h.carts.AddCartItem(c.Request().Context(), memberID, *req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}
	return &model.IDResponse{ID: id}, nil
}

func (h *CartHandler) UpdateQuantity(c echo.Context, req *model.UpdateCartItemRequest) error {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return err
	}
	return h.carts.UpdateQuantity(c.Request().Context(), memberID, req.CartItemID, req.Quantity)
}

func (h *CartHandler) DeleteCartItem(c echo.Context, req *model.CartItemIDRequest) error {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return err
	}
	return h.carts.DeleteCartItem(c.Request().Context(), memberID, req.CartItemID)
}
