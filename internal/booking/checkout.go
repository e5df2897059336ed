package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

var (
	// ErrSeatReserved is returned when a reserved seat is toggled.
	ErrSeatReserved = errors.New("seat is reserved")
	// ErrUnknownSeat is returned for seats outside the room template.
	ErrUnknownSeat = errors.New("seat is not part of the room")
	// ErrSeatsNotLoaded is returned when seats are picked before the seat
	// map for the selected showtime has arrived.
	ErrSeatsNotLoaded = errors.New("seat map not loaded")
	// ErrUnknownTime is returned when no showtime starts at the requested
	// time on the selected date.
	ErrUnknownTime = errors.New("no showtime at that time")
)

// SeatRequest identifies one fetch of the seat map.  Key encodes the
// selection that produced it; a response is only applied while its key is
// still the current one.
type SeatRequest struct {
	Key        string `json:"key"`
	ShowTimeID string `json:"show_time_id"`
}

// Checkout is the state of one checkout session.  It is plain data so it
// can be persisted between requests; every mutation goes through a method
// that keeps chosen seats disjoint from reserved ones.
type Checkout struct {
	MovieID     string           `json:"movie_id"`
	ShowTimes   []model.ShowTime `json:"show_times"`
	Date        time.Time        `json:"date"`
	Time        string           `json:"time,omitempty"`
	ShowTime    *model.ShowTime  `json:"show_time,omitempty"`
	Available   []Seat           `json:"available,omitempty"`
	SeatsLoaded bool             `json:"seats_loaded"`
	Chosen      []Seat           `json:"chosen"`
	Cart        Cart             `json:"cart"`
	Generation  uint64           `json:"generation"`
	PendingKey  string           `json:"pending_key,omitempty"`
}

// NewCheckout starts a checkout for movieID with today preselected.
func NewCheckout(movieID string, showTimes []model.ShowTime, today time.Time) *Checkout {
	c := &Checkout{}
	c.SelectMovie(movieID, showTimes, today)
	return c
}

// SelectMovie switches to another movie and resets everything, including
// the cart.
func (c *Checkout) SelectMovie(movieID string, showTimes []model.ShowTime, today time.Time) {
	gen := c.Generation + 1
	*c = Checkout{
		MovieID:    movieID,
		ShowTimes:  showTimes,
		Date:       today,
		Chosen:     []Seat{},
		Cart:       NewCart(),
		Generation: gen,
	}
}

// SelectDate changes the date.  The selected time, seat map and chosen
// seats are cleared and any seat fetch in flight is invalidated.
func (c *Checkout) SelectDate(d time.Time) {
	c.Date = d
	c.Time = ""
	c.ShowTime = nil
	c.resetSeats()
	c.Generation++
	c.PendingKey = ""
}

// SelectTime picks the showtime starting at clock on the selected date and
// returns the seat fetch the caller must perform.
func (c *Checkout) SelectTime(clock string, loc *time.Location) (SeatRequest, error) {
	st, ok := FindShowTime(c.ShowTimes, c.Date, clock, loc)
	if !ok {
		return SeatRequest{}, ErrUnknownTime
	}
	c.Time = clock
	c.ShowTime = &st
	c.resetSeats()
	c.Generation++
	req := SeatRequest{Key: fmt.Sprintf("%s#%d", st.ID, c.Generation), ShowTimeID: st.ID}
	c.PendingKey = req.Key
	return req, nil
}

// Pending returns the seat fetch still awaited, if any.
func (c *Checkout) Pending() (SeatRequest, bool) {
	if c.PendingKey == "" || c.ShowTime == nil {
		return SeatRequest{}, false
	}
	return SeatRequest{Key: c.PendingKey, ShowTimeID: c.ShowTime.ID}, true
}

// ApplySeats installs the available seats returned for req.  Responses
// whose key no longer matches the current selection are discarded and
// false is returned.
func (c *Checkout) ApplySeats(req SeatRequest, available []Seat) bool {
	if req.Key == "" || req.Key != c.PendingKey {
		return false
	}
	c.Available = append([]Seat(nil), available...)
	c.SeatsLoaded = true
	c.PendingKey = ""
	return true
}

func (c *Checkout) resetSeats() {
	c.Available = nil
	c.SeatsLoaded = false
	c.Chosen = []Seat{}
}

// Reserved returns the reserved seats of the loaded seat map.
func (c *Checkout) Reserved() []Seat {
	if !c.SeatsLoaded {
		return nil
	}
	return ReservedSet(defaultTemplate, c.Available)
}

// ToggleSeat adds or removes s from the chosen seats.
func (c *Checkout) ToggleSeat(s Seat) error {
	if !c.SeatsLoaded {
		return ErrSeatsNotLoaded
	}
	if !Contains(defaultTemplate, s) {
		return ErrUnknownSeat
	}
	if !Contains(c.Available, s) {
		return ErrSeatReserved
	}
	c.Chosen = Toggle(c.Chosen, s)
	return nil
}

// SelectAllAvailable chooses every seat that is not reserved.
func (c *Checkout) SelectAllAvailable() error {
	if !c.SeatsLoaded {
		return ErrSeatsNotLoaded
	}
	c.Chosen = SelectAllAvailable(defaultTemplate, c.Reserved())
	return nil
}

// Grid builds the seat map for display.  Before the seat map has loaded
// every seat shows as reserved.
func (c *Checkout) Grid() Grid {
	return BuildGrid(defaultTemplate, c.Available, c.Chosen)
}

// Times lists the showtime labels for the selected date.
func (c *Checkout) Times(loc *time.Location) []string {
	return TimesOn(c.ShowTimes, c.Date, loc)
}

// Compose builds the order payload for this checkout.
func (c *Checkout) Compose() (model.PlaceOrder, error) {
	return Compose(c.ShowTime, c.Chosen, c.Cart)
}

// Quote prices the current selection.
func (c *Checkout) Quote(products []model.Product, seatPrice int64) Quote {
	return NewQuote(c.Chosen, c.Cart, products, seatPrice)
}
