package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-storefront/internal/handler"
	"github.com/iliyamo/cinema-storefront/internal/middleware"
	"github.com/iliyamo/cinema-storefront/internal/model"
)

// RegisterAdmin registers the back office under /v1/admin.  Only ADMIN
// tokens are accepted.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))

	g.GET("/movies", a.ListMovies)
	g.POST("/movies", a.CreateMovie)
	g.PUT("/movies/:id", a.UpdateMovie)
	g.DELETE("/movies/:id", a.DeleteMovie)

	g.GET("/showtimes", a.ListShowTimes)
	g.POST("/showtimes", a.CreateShowTime)
	g.PUT("/showtimes/:id", a.UpdateShowTime)
	g.DELETE("/showtimes/:id", a.DeleteShowTime)

	g.GET("/products", a.ListProducts)
	g.POST("/products", a.CreateProduct)
	g.PUT("/products/:id", a.UpdateProduct)
	g.DELETE("/products/:id", a.DeleteProduct)

	g.GET("/employees", a.ListEmployees)
	g.POST("/employees", a.CreateEmployee)
	g.PUT("/employees/:id", a.UpdateEmployee)
	g.DELETE("/employees/:id", a.DeleteEmployee)

	g.GET("/customers", a.ListCustomers)
	g.DELETE("/customers/:id", a.DeleteCustomer)

	g.GET("/orders", a.ListOrders)
	g.DELETE("/orders/:id", a.DeleteOrder)
}
