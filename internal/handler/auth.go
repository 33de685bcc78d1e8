package handler

import (
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/deppfellow/shoppingcart/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) Login(c echo.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	accessToken, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{AccessToken: accessToken}, nil
}
