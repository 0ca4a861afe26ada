package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartwash/internal/session"
)

// currentIdentity returns the identity the session middleware resolved.
// Protected routes always have one; a missing identity means the route
// was wired without the middleware, so redirect rather than panic.
func currentIdentity(c echo.Context) (*session.Identity, error) {
	ident, ok := c.Get(session.ContextKey).(*session.Identity)
	if !ok || ident == nil {
		return nil, c.Redirect(http.StatusSeeOther, "/login")
	}
	return ident, nil
}
