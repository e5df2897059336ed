package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-storefront/internal/handler"
	"github.com/iliyamo/cinema-storefront/internal/middleware"
	"github.com/iliyamo/cinema-storefront/internal/model"
)

// CustomerHandlers groups the handlers behind customer authentication.
type CustomerHandlers struct {
	Checkout      *handler.CheckoutHandler
	Receipts      *handler.ReceiptHandler
	Notifications *handler.NotificationHandler
}

// RegisterCustomer registers the checkout workflow, receipts and
// notifications.  Staff accounts may use them too.
func RegisterCustomer(e *echo.Echo, h CustomerHandlers, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleAdmin),
		limit,
	)

	co := h.Checkout
	g.POST("/checkout", co.Create)
	g.GET("/checkout/:id", co.Get)
	g.DELETE("/checkout/:id", co.Delete)
	g.PUT("/checkout/:id/date", co.SelectDate)
	g.PUT("/checkout/:id/time", co.SelectTime)
	g.POST("/checkout/:id/seats/toggle", co.ToggleSeat)
	g.POST("/checkout/:id/seats/all", co.SelectAll)
	g.POST("/checkout/:id/cart/:product_id/increment", co.Increment)
	g.POST("/checkout/:id/cart/:product_id/decrement", co.Decrement)
	g.POST("/checkout/:id/order", co.PlaceOrder)

	g.GET("/my-receipts", h.Receipts.ListMine)
	g.GET("/my-receipts/:order_id", h.Receipts.GetMine)

	g.GET("/notifications", h.Notifications.Drain)
}
