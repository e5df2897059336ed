package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// Login exchanges credentials for a backend token.  The backend reports
// bad credentials either with a 4xx status or with a 200 carrying an error
// field; both come back as ErrUnauthorized.
func (c *Client) Login(ctx context.Context, in model.LoginRequest) (*model.AuthResult, error) {
	var res model.AuthResult
	err := c.do(ctx, http.MethodPost, "/Authen/login", in, &res)
	switch {
	case errors.Is(err, ErrInvalid), errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case err != nil:
		return nil, err
	}
	if res.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, res.Error)
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: no token issued", ErrUnauthorized)
	}
	res.User.Role = model.RoleFor(res.User)
	return &res, nil
}

// Register creates a customer account.  It does not log in.
func (c *Client) Register(ctx context.Context, in model.RegisterRequest) error {
	var res struct {
		Error string `json:"error"`
	}
	err := c.do(ctx, http.MethodPost, "/Authen/register", in, &res)
	if err != nil && !errors.Is(err, errEmptyBody) {
		return err
	}
	if res.Error != "" {
		return fmt.Errorf("%w: %s", ErrInvalid, res.Error)
	}
	return nil
}

// VerifyToken asks the backend whether the token in ctx is still valid.
func (c *Client) VerifyToken(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/Authen/token", nil, nil)
}
