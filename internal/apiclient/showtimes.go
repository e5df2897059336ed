package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// ShowTimesByMovie lists the showtimes of one movie.
func (c *Client) ShowTimesByMovie(ctx context.Context, movieID string) ([]model.ShowTime, error) {
	id := url.PathEscape(movieID)
	return getList[model.ShowTime](ctx, c, "/ShowTimes/movie/"+id+"?movieId="+url.QueryEscape(movieID))
}

// ListShowTimes lists every showtime.
func (c *Client) ListShowTimes(ctx context.Context) ([]model.ShowTime, error) {
	return getList[model.ShowTime](ctx, c, "/ShowTimes")
}

func (c *Client) CreateShowTime(ctx context.Context, in model.ShowTimeInput) (*model.ShowTime, error) {
	return send[model.ShowTime](ctx, c, http.MethodPost, "/ShowTimes", in)
}

func (c *Client) UpdateShowTime(ctx context.Context, id string, in model.ShowTimeInput) (*model.ShowTime, error) {
	return send[model.ShowTime](ctx, c, http.MethodPut, "/ShowTimes/"+url.PathEscape(id), in)
}

func (c *Client) DeleteShowTime(ctx context.Context, id string) error {
	return c.remove(ctx, "/ShowTimes/"+url.PathEscape(id))
}

// AvailableSeats returns the seats of a showtime that can still be booked.
// Seats of the room template missing from the result are reserved.
func (c *Client) AvailableSeats(ctx context.Context, showTimeID string) ([]model.Seat, error) {
	return getList[model.Seat](ctx, c, "/Seats/Showtime/"+url.PathEscape(showTimeID))
}
