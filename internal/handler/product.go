package handler

import (
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/deppfellow/shoppingcart/internal/service"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	Handler
	products *service.ProductService
}

func NewProductHandler(s *server.Server, products *service.ProductService) *ProductHandler {
	return &ProductHandler{
		Handler:  NewHandler(s),
		products: products,
	}
}

func (h *ProductHandler) AddProduct(c echo.Context, req *model.AddProductRequest) (*model.IDResponse, error) {
	id, err := h.products.AddProduct(c.Request().Context(), req.Name, req.Price, req.ImageURL)
	if err != nil {
		return nil, err
	}
	return &model.IDResponse{ID: id}, nil
}

func (h *ProductHandler) GetProducts(c echo.Context, _ *model.EmptyRequest) ([]model.Product, error) {
	return h.products.FindProducts(c.Request().Context())
}

func (h *ProductHandler) GetProduct(c echo.Context, req *model.ProductIDRequest) (*model.Product, error) {
	return h.products.FindProduct(c.Request().Context(), req.ProductID)
}

func (h *ProductHandler) DeleteProduct(c echo.Context, req *model.ProductIDRequest) error {
	return h.products.DeleteProduct(c.Request().Context(), req.ProductID)
}
