package authmw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woodharbor/slabstore/pkg/tokens"
)

const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

// RequireAuth rejects requests without a valid access token cookie. The 401
// is the caller's signal to redirect to the login flow.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(tokens.AccessCookieName)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(cookie.Value, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(EmailKey, claims.Email)
		return next(c)
	}
}

// OptionalAuth sets the user context when a valid token is present and lets
// anonymous requests through. Used by read endpoints that only personalize
// their response for logged-in users.
func (m *Middleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(tokens.AccessCookieName)
		if err == nil && cookie.Value != "" {
			if claims, err := tokens.AccessClaimsFromToken(cookie.Value, m.JWTSecret); err == nil {
				c.Set(UserIDKey, claims.Subject)
				c.Set(EmailKey, claims.Email)
			}
		}
		return next(c)
	}
}
