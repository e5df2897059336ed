package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

func (c *Client) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	return getList[model.Employee](ctx, c, "/Employees")
}

func (c *Client) CreateEmployee(ctx context.Context, in model.EmployeeInput) (*model.Employee, error) {
	return send[model.Employee](ctx, c, http.MethodPost, "/Employees", in)
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, in model.EmployeeInput) (*model.Employee, error) {
	return send[model.Employee](ctx, c, http.MethodPut, "/Employees/"+url.PathEscape(id), in)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.remove(ctx, "/Employees/"+url.PathEscape(id))
}

func (c *Client) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return getList[model.Customer](ctx, c, "/Customers")
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.remove(ctx, "/Customers/"+url.PathEscape(id))
}
