package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// ListMovies returns every movie in the catalogue.
func (c *Client) ListMovies(ctx context.Context) ([]model.Movie, error) {
	return getList[model.Movie](ctx, c, "/Movies")
}

// GetMovie returns one movie.  A missing movie yields ErrNotFound whether
// the backend answers 404 or an empty body.
func (c *Client) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	return getOne[model.Movie](ctx, c, "/Movies/"+url.PathEscape(id))
}

// CreateMovie adds a movie and returns the stored document when the backend
// echoes one.
func (c *Client) CreateMovie(ctx context.Context, in model.MovieInput) (*model.Movie, error) {
	return send[model.Movie](ctx, c, http.MethodPost, "/Movies", in)
}

// UpdateMovie replaces the movie with the given id.
func (c *Client) UpdateMovie(ctx context.Context, id string, in model.MovieInput) (*model.Movie, error) {
	return send[model.Movie](ctx, c, http.MethodPut, "/Movies/"+url.PathEscape(id), in)
}

// DeleteMovie removes a movie.
func (c *Client) DeleteMovie(ctx context.Context, id string) error {
	return c.remove(ctx, "/Movies/"+url.PathEscape(id))
}
