package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-storefront/internal/middleware"
	"github.com/iliyamo/cinema-storefront/internal/model"
	"github.com/iliyamo/cinema-storefront/internal/repository"
)

// ReceiptLister reads the receipt journal.
type ReceiptLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Receipt, error)
	GetByOrderID(ctx context.Context, orderID string) (model.Receipt, error)
}

// ReceiptHandler serves the caller's receipts.  Repo is nil when the
// journal database is not configured.
type ReceiptHandler struct {
	Repo ReceiptLister
}

func (h *ReceiptHandler) disabled(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "receipts_disabled"})
}

func (h *ReceiptHandler) ListMine(c echo.Context) error {
	if h.Repo == nil {
		return h.disabled(c)
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, err := h.Repo.ListByUser(c.Request().Context(), middleware.UserID(c), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMine returns one receipt; other users' receipts are reported as not
// found.
func (h *ReceiptHandler) GetMine(c echo.Context) error {
	if h.Repo == nil {
		return h.disabled(c)
	}
	rc, err := h.Repo.GetByOrderID(c.Request().Context(), c.Param("order_id"))
	if err != nil {
		return fail(c, err)
	}
	if rc.UserID != middleware.UserID(c) {
		return fail(c, repository.ErrReceiptNotFound)
	}
	return c.JSON(http.StatusOK, rc)
}
