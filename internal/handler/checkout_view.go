package handler

import (
	"time"

	"github.com/iliyamo/cinema-storefront/internal/booking"
	"github.com/iliyamo/cinema-storefront/internal/model"
	"github.com/iliyamo/cinema-storefront/internal/session"
)

// checkoutView is what the browser renders for a checkout.
type checkoutView struct {
	ID          string              `json:"id"`
	MovieID     string              `json:"movie_id"`
	MovieTitle  string              `json:"movie_title"`
	Dates       []string            `json:"dates"`
	Date        string              `json:"date"`
	Times       []string            `json:"times"`
	Time        string              `json:"time,omitempty"`
	ShowTime    *model.ShowTime     `json:"show_time,omitempty"`
	SeatsLoaded bool                `json:"seats_loaded"`
	Loading     bool                `json:"loading"`
	Grid        booking.Grid        `json:"grid"`
	Chosen      []string            `json:"chosen"`
	Cart        []model.ProductLine `json:"cart"`
	Products    []model.Product     `json:"products"`
	Quote       booking.Quote       `json:"quote"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (h *CheckoutHandler) view(sess *session.Session) checkoutView {
	co := &sess.Checkout
	strip := h.DateStrip
	if strip <= 0 {
		strip = booking.DefaultDateStrip
	}
	dates := make([]string, 0, strip)
	for _, d := range booking.UpcomingDates(h.today(), strip) {
		dates = append(dates, d.Format(dateLayout))
	}
	chosen := make([]string, 0, len(co.Chosen))
	for _, s := range co.Chosen {
		chosen = append(chosen, s.ID())
	}
	_, loading := co.Pending()
	return checkoutView{
		ID:          sess.ID,
		MovieID:     co.MovieID,
		MovieTitle:  sess.MovieTitle,
		Dates:       dates,
		Date:        co.Date.In(h.Location).Format(dateLayout),
		Times:       nonNil(co.Times(h.Location)),
		Time:        co.Time,
		ShowTime:    co.ShowTime,
		SeatsLoaded: co.SeatsLoaded,
		Loading:     loading,
		Grid:        co.Grid(),
		Chosen:      chosen,
		Cart:        co.Cart.Lines(),
		Products:    nonNil(sess.Products),
		Quote:       co.Quote(sess.Products, h.SeatPrice),
		UpdatedAt:   sess.UpdatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
