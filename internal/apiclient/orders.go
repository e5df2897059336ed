package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// ListOrders returns every order (back office).
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	return getList[model.Order](ctx, c, "/Orders")
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.remove(ctx, "/Orders/"+url.PathEscape(id))
}

// PlaceOrder submits a composed order and returns the backend order id.
// A rejected order (a seat taken meanwhile, an unknown product) is reported
// as ErrConflict so the caller can let the user retry.
func (c *Client) PlaceOrder(ctx context.Context, order model.PlaceOrder) (string, error) {
	var res model.PlaceOrderResult
	err := c.do(ctx, http.MethodPost, "/Tickets/placeOrder", order, &res)
	switch {
	case errors.Is(err, ErrInvalid):
		return "", fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, errEmptyBody):
		return "", &StatusError{Method: http.MethodPost, Path: "/Tickets/placeOrder", Code: http.StatusOK, Body: "missing order"}
	case err != nil:
		return "", err
	}
	if res.Order.ID == "" {
		return "", &StatusError{Method: http.MethodPost, Path: "/Tickets/placeOrder", Code: http.StatusOK, Body: "missing order id"}
	}
	return res.Order.ID, nil
}
