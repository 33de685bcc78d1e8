package service

import (
	"context"
	"strconv"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/lib/token"
)

// AuthService exchanges credentials for access tokens and resolves tokens
// back to member ids.
type AuthService struct {
	members *MemberService
	tokens  *token.Provider
}

func NewAuthService(members *MemberService, tokens *token.Provider) *AuthService {
	return &AuthService{members: members, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	id, err := s.members.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	return s.tokens.Create(strconv.FormatInt(id, 10))
}

// MemberID returns the member id carried by an access token.
func (s *AuthService) MemberID(accessToken string) (int64, error) {
	subject, err := s.tokens.Subject(accessToken)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.ErrInvalidToken
	}
	return id, nil
}
