package middleware

import (
	"strconv"
	"strings"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/deppfellow/shoppingcart/internal/server"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// TokenResolver turns an access token into a member id.
type TokenResolver interface {
	MemberID(accessToken string) (int64, error)
}

type AuthMiddleware struct {
	server *server.Server
	tokens TokenResolver
}

func NewAuthMiddleware(s *server.Server, tokens TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: tokens,
	}
}

// RequireAuth accepts "Authorization: Bearer <token>" and stores the member
// id under UserIDKey. A missing header fails with errs.ErrMissingToken, any
// other problem with errs.ErrInvalidToken.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return errs.ErrMissingToken
		}

		if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return errs.ErrInvalidToken
		}

		memberID, err := auth.tokens.MemberID(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			return err
		}

		userID := strconv.FormatInt(memberID, 10)
		c.Set(UserIDKey, userID)

		logger := GetLogger(c).With().Str("user_id", userID).Logger()
		c.Set(LoggerKey, &logger)
		c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context())))

		return next(c)
	}
}

// MemberID returns the id stored by RequireAuth. Handlers behind RequireAuth
// always get a valid id.
func MemberID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(GetUserID(c), 10, 64)
	if err != nil {
		return 0, errs.ErrMissingToken
	}
	return id, nil
}
