package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// ListProducts returns the concession catalogue.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	return getList[model.Product](ctx, c, "/Products")
}

func (c *Client) CreateProduct(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	return send[model.Product](ctx, c, http.MethodPost, "/Products", in)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	return send[model.Product](ctx, c, http.MethodPut, "/Products/"+url.PathEscape(id), in)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.remove(ctx, "/Products/"+url.PathEscape(id))
}
