package handler

import (
	"strconv"

	"github.com/deppfellow/shoppingcart/internal/middleware"
	"github.com/deppfellow/shoppingcart/internal/model"
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/deppfellow/shoppingcart/internal/service"
	"github.com/labstack/echo/v4"
)

type MemberHandler struct {
	Handler
	members *service.MemberService
}

func NewMemberHandler(s *server.Server, members *service.MemberService) *MemberHandler {
	return &MemberHandler{
		Handler: NewHandler(s),
		members: members,
	}
}

// SignUp answers with the new id and a Location header.
func (h *MemberHandler) SignUp(c echo.Context, req *model.SignUpRequest) (*model.IDResponse, error) {
	id, err := h.members.SignUp(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/members/"+strconv.FormatInt(id, 10))
	return &model.IDResponse{ID: id}, nil
}

func (h *MemberHandler) CheckDuplicateEmail(c echo.Context, req *model.DuplicateEmailRequest) error {
	return h.members.CheckDuplicateEmail(c.Request().Context(), req.Email)
}

func (h *MemberHandler) GetMe(c echo.Context, _ *model.EmptyRequest) (*model.MemberInfoResponse, error) {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return nil, err
	}
	return h.members.FindMemberByID(c.Request().Context(), memberID)
}

func (h *MemberHandler) UpdateName(c echo.Context, req *model.UpdateNameRequest) error {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return err
	}
	return h.members.UpdateName(c.Request().Context(), memberID, req.Name)
}

func (h *MemberHandler) UpdatePassword(c echo.Context, req *model.UpdatePasswordRequest) error {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return err
	}
	return h.members.UpdatePassword(c.Request().Context(), memberID, req.OldPassword, req.NewPassword)
}

func (h *MemberHandler) DeleteMe(c echo.Context, req *model.DeleteMemberRequest) error {
	memberID, err := middleware.MemberID(c)
	if err != nil {
		return err
	}
	return h.members.DeleteMemberByID(c.Request().Context(), memberID, req.Password)
}
