package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-storefront/internal/apiclient"
	"github.com/iliyamo/cinema-storefront/internal/utils"
)

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	s, _ := c.Get(ctxUserID).(string)
	return s
}

// Role returns the authenticated user's role, or "".
func Role(c echo.Context) string {
	s, _ := c.Get(ctxRole).(string)
	return s
}

// Claims returns the parsed session token, or nil.
func Claims(c echo.Context) *utils.SessionClaims {
	cl, _ := c.Get(ctxClaims).(*utils.SessionClaims)
	return cl
}

// BackendContext returns the request context carrying the caller's backend
// token, ready for apiclient calls.
func BackendContext(c echo.Context) context.Context {
	ctx := c.Request().Context()
	if cl := Claims(c); cl != nil && cl.BackendToken != "" {
		return apiclient.WithToken(ctx, cl.BackendToken)
	}
	return ctx
}

// rateKeyUser identifies the caller for rate limiting.
func rateKeyUser(c echo.Context) string {
	if id := UserID(c); id != "" {
		return id
	}
	return "anon"
}
