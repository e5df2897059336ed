// Package router registers the HTTP routes of the storefront.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-storefront/internal/handler"
	"github.com/iliyamo/cinema-storefront/internal/middleware"
)

// RegisterRoutes registers routes that need neither auth nor rate limits.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers login and registration under /v1/auth and the
// protected /v1/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", limit)
	g.POST("/login", a.Login)
	g.POST("/register", a.Register)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers the catalogue.  Callers are identified when
// they send a token so rate limits apply per user, but no token is
// required.
func RegisterPublic(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, limit, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.OptionalJWT(jwtSecret), limit, cache)
	g.GET("/movies", h.ListMovies)
	g.GET("/movies/:id", h.GetMovie)
	g.GET("/movies/:id/showtimes", h.MovieShowTimes)
	g.GET("/products", h.ListProducts)
}
