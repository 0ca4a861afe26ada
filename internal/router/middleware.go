package router

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"smartwash/internal/session"
)

// cookieAuth validates the session cookie's JWT signature. Anything
// wrong with the cookie is a navigation decision, not an error page.
func cookieAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "cookie:" + session.CookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(session.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusSeeOther, "/login")
		},
	})
}

// resolveIdentity looks the validated token's session id up in the store
// and attaches the identity to the request. A missing session (logged
// out, expired, redis flushed) redirects to login.
func resolveIdentity(store session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			claims, ok := token.Claims.(*session.Claims)
			if !ok || claims.ID == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			ident, err := store.Get(c.Request().Context(), claims.ID)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			c.Set(session.ContextKey, ident)
			return next(c)
		}
	}
}

// requireRole redirects any identity whose role does not match. Admins
// hitting the user dashboard bounce to login just like anonymous visitors.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := c.Get(session.ContextKey).(*session.Identity)
			if !ok || ident.Role != role {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}
