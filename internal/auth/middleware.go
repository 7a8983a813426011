package auth

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "smartvegis/internal/errors"
)

const claimsContextKey = "vendor"

// Middleware returns the bearer-token middleware for protected routes.
// Missing, malformed, expired and forged tokens are all rejected with the
// same ErrInvalidToken.
func Middleware(s *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return s.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.ErrInvalidToken
		},
	})
}

// ClaimsFromContext returns the claims stored by Middleware.
func ClaimsFromContext(c echo.Context) (*Claims, error) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
