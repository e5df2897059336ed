package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the public catalogue.  Responses are cached by the
// Redis cache middleware.
type CatalogHandler struct {
	API Backend
}

func (h *CatalogHandler) ListMovies(c echo.Context) error {
	movies, err := h.API.ListMovies(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// GetMovie returns 404 for unknown ids, whether the backend answers 404 or
// an empty body.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	m, err := h.API.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *CatalogHandler) MovieShowTimes(c echo.Context) error {
	sts, err := h.API.ShowTimesByMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": sts})
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.API.ListProducts(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": products})
}
