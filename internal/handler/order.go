package handler

import (
	"github.com/deppfellow/shoppingcart/internal/middleware"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/deppfellow/shoppingcart/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Handler
	orders *service.OrderService
}

func NewOrderHandler(s *server.Server, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Handler: NewHandler(s),
		orders:  orders,
	}
}

func (h *OrderHandler) AddOrder(c echo.Context, req *model.PlaceOrderRequest) (*model.IDResponse, error) {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return nil, err
	}

	id, err := h.orders.AddOrder(c.Request().Context(), memberID, req.Lines())
	if err != nil {
		return nil, err
	}
	return &model.IDResponse{ID: id}, nil
}

func (h *OrderHandler) GetOrders(c echo.Context, _ *model.EmptyRequest) ([]model.Order, error) {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return nil, err
	}
	return h.orders.FindOrders(c.Request().Context(), memberID)
}

func (h *OrderHandler) GetOrder(c echo.Context, req *model.OrderIDRequest) (*model.Order, error) {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return nil, err
	}
	return h.orders.FindOrder(c.Request().Context(), memberID, req.OrderID)
}
