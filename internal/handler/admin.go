package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-storefront/internal/middleware"
	"github.com/iliyamo/cinema-storefront/internal/model"
)

// AdminHandler proxies the back office to the backend.  Bodies are bound
// into the model *Input types and validated before they are forwarded.
type AdminHandler struct {
	API Backend
	// InvalidateCatalog drops cached catalogue responses after a write.
	// It may be nil.
	InvalidateCatalog func(ctx context.Context) error
	Log               *zap.Logger
}

func (h *AdminHandler) invalidate(ctx context.Context) {
	if h.InvalidateCatalog == nil {
		return
	}
	if err := h.InvalidateCatalog(ctx); err != nil {
		h.Log.Warn("invalidate catalogue cache", zap.Error(err))
	}
}

// created writes v, or 204 when the backend did not echo the resource.
func created[T any](c echo.Context, status int, v *T) error {
	if v == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(status, v)
}

func list[T any](c echo.Context, fetch func(context.Context) ([]T, error)) error {
	items, err := fetch(middleware.BackendContext(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *AdminHandler) remove(c echo.Context, del func(context.Context, string) error, catalog bool) error {
	ctx := middleware.BackendContext(c)
	if err := del(ctx, c.Param("id")); err != nil {
		return fail(c, err)
	}
	if catalog {
		h.invalidate(ctx)
	}
	return c.NoContent(http.StatusNoContent)
}

// write binds an input of type I and forwards it with create (id == "")
// or update.
func write[I any, T any](h *AdminHandler, c echo.Context, create func(context.Context, I) (*T, error), update func(context.Context, string, I) (*T, error), catalog bool) error {
	var in I
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	ctx := middleware.BackendContext(c)
	var (
		out    *T
		err    error
		status = http.StatusOK
	)
	if id := c.Param("id"); id != "" {
		out, err = update(ctx, id, in)
	} else {
		out, err = create(ctx, in)
		status = http.StatusCreated
	}
	if err != nil {
		return fail(c, err)
	}
	if catalog {
		h.invalidate(ctx)
	}
	return created(c, status, out)
}

func (h *AdminHandler) ListMovies(c echo.Context) error { return list(c, h.API.ListMovies) }
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	return write(h, c, h.API.CreateMovie, h.API.UpdateMovie, true)
}
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	return write(h, c, h.API.CreateMovie, h.API.UpdateMovie, true)
}
func (h *AdminHandler) DeleteMovie(c echo.Context) error { return h.remove(c, h.API.DeleteMovie, true) }

// adminShowTime is a showtime with its movie title resolved.
type adminShowTime struct {
	model.ShowTime
	MovieTitle string `json:"movieTitle"`
}

// ListShowTimes lists showtimes with their movie titles.  Showtimes whose
// movie no longer exists keep an empty title.
func (h *AdminHandler) ListShowTimes(c echo.Context) error {
	ctx := middleware.BackendContext(c)
	sts, err := h.API.ListShowTimes(ctx)
	if err != nil {
		return fail(c, err)
	}
	movies, err := h.API.ListMovies(ctx)
	if err != nil {
		return fail(c, err)
	}
	titles := make(map[string]string, len(movies))
	for _, m := range movies {
		titles[m.ID] = m.Title
	}
	out := make([]adminShowTime, 0, len(sts))
	for _, st := range sts {
		title := titles[st.MovieID]
		if title == "" && st.Movie != nil {
			title = st.Movie.Title
		}
		out = append(out, adminShowTime{ShowTime: st, MovieTitle: title})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
func (h *AdminHandler) CreateShowTime(c echo.Context) error {
	return write(h, c, h.API.CreateShowTime, h.API.UpdateShowTime, true)
}
func (h *AdminHandler) UpdateShowTime(c echo.Context) error {
	return write(h, c, h.API.CreateShowTime, h.API.UpdateShowTime, true)
}
func (h *AdminHandler) DeleteShowTime(c echo.Context) error {
	return h.remove(c, h.API.DeleteShowTime, true)
}

func (h *AdminHandler) ListProducts(c echo.Context) error { return list(c, h.API.ListProducts) }
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	return write(h, c, h.API.CreateProduct, h.API.UpdateProduct, true)
}
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	return write(h, c, h.API.CreateProduct, h.API.UpdateProduct, true)
}
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	return h.remove(c, h.API.DeleteProduct, true)
}

func (h *AdminHandler) ListEmployees(c echo.Context) error { return list(c, h.API.ListEmployees) }
func (h *AdminHandler) CreateEmployee(c echo.Context) error {
	return write(h, c, h.API.CreateEmployee, h.API.UpdateEmployee, false)
}
func (h *AdminHandler) UpdateEmployee(c echo.Context) error {
	return write(h, c, h.API.CreateEmployee, h.API.UpdateEmployee, false)
}
func (h *AdminHandler) DeleteEmployee(c echo.Context) error {
	return h.remove(c, h.API.DeleteEmployee, false)
}

func (h *AdminHandler) ListCustomers(c echo.Context) error { return list(c, h.API.ListCustomers) }
func (h *AdminHandler) DeleteCustomer(c echo.Context) error {
	return h.remove(c, h.API.DeleteCustomer, false)
}

func (h *AdminHandler) ListOrders(c echo.Context) error { return list(c, h.API.ListOrders) }
func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	return h.remove(c, h.API.DeleteOrder, false)
}
