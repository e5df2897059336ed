package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-storefront/internal/middleware"
	"github.com/iliyamo/cinema-storefront/internal/notify"
)

type NotificationHandler struct {
	Notifier notify.Notifier
}

// Drain returns and clears the caller's pending toasts.
func (h *NotificationHandler) Drain(c echo.Context) error {
	toasts, err := h.Notifier.Drain(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toasts})
}
