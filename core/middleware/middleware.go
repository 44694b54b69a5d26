package middleware

import (
	"strings"

	"moim-api/core/constants"
	"moim-api/core/controller"
	"moim-api/core/errors"
	"moim-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

func bearerToken(ctx echo.Context) (string, *echo.HTTPError) {
	header := ctx.Request().Header.Get("Authorization")
	if header == "" {
		return "", controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Authorization header must be a Bearer token")
	}
	return parts[1], nil
}

func authenticate(ctx echo.Context) (*utils.TokenClaims, *echo.HTTPError) {
	token, httpErr := bearerToken(ctx)
	if httpErr != nil {
		return nil, httpErr
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, controller.NewErrorResponse(401, errors.ErrUnauthorized, "Invalid or expired token")
	}
	return claims, nil
}

// AuthMiddleware requires a user-scoped token.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, httpErr := authenticate(ctx)
			if httpErr != nil {
				return httpErr
			}
			if claims.Scope != utils.ScopeUser {
				return controller.NewErrorResponse(403, errors.ErrForbidden, "User token required")
			}
			ctx.Set(constants.ContextTokenData, claims)
			return next(ctx)
		}
	}
}

// ParticipantMiddleware accepts either a user token or an event-scoped
// member token. Handlers decide whether the member's event matches.
func (m *Middleware) ParticipantMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, httpErr := authenticate(ctx)
			if httpErr != nil {
				return httpErr
			}
			ctx.Set(constants.ContextTokenData, claims)
			return next(ctx)
		}
	}
}
