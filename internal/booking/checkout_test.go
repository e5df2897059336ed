package booking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func loadedCheckout(t *testing.T, reserved ...Seat) *Checkout {
	t.Helper()
	c := NewCheckout("M1", movieShowTimes(), june1)
	req, err := c.SelectTime("10:00", time.UTC)
	require.NoError(t, err)
	require.True(t, c.ApplySeats(req, without(DefaultTemplate(), reserved...)))
	return c
}

func TestCheckoutSelectTimeIssuesRequest(t *testing.T) {
	c := NewCheckout("M1", movieShowTimes(), june1)
	assert.Equal(t, []string{"10:00", "14:00"}, c.Times(time.UTC))

	req, err := c.SelectTime("14:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "s2", req.ShowTimeID)
	assert.NotEmpty(t, req.Key)

	pending, ok := c.Pending()
	require.True(t, ok)
	assert.Equal(t, req, pending)

	_, err = c.SelectTime("23:00", time.UTC)
	assert.ErrorIs(t, err, ErrUnknownTime)
}

func TestCheckoutStaleSeatResponseIsDiscarded(t *testing.T) {
	c := NewCheckout("M1", movieShowTimes(), june1)

	reqS1, err := c.SelectTime("10:00", time.UTC)
	require.NoError(t, err)
	reqS2, err := c.SelectTime("14:00", time.UTC)
	require.NoError(t, err)

	s2Available := without(DefaultTemplate(), Seat{"E", 5})
	assert.True(t, c.ApplySeats(reqS2, s2Available))

	s1Available := without(DefaultTemplate(), Seat{"A", 1}, Seat{"A", 2})
	assert.False(t, c.ApplySeats(reqS1, s1Available), "response for S1 arrives late")

	assert.Equal(t, []Seat{{"E", 5}}, c.Reserved())
	assert.Equal(t, "s2", c.ShowTime.ID)
}

func TestCheckoutStaleAfterDateChange(t *testing.T) {
	c := NewCheckout("M1", movieShowTimes(), june1)
	req, err := c.SelectTime("10:00", time.UTC)
	require.NoError(t, err)

	c.SelectDate(june1.AddDate(0, 0, 1))
	assert.False(t, c.ApplySeats(req, DefaultTemplate()))
	assert.False(t, c.SeatsLoaded)
	assert.Empty(t, c.Time)
	assert.Nil(t, c.ShowTime)
	_, ok := c.Pending()
	assert.False(t, ok)
}

func TestCheckoutStaleAfterMovieChange(t *testing.T) {
	c := NewCheckout("M1", movieShowTimes(), june1)
	req, err := c.SelectTime("10:00", time.UTC)
	require.NoError(t, err)

	c.SelectMovie("M2", nil, june1)
	assert.False(t, c.ApplySeats(req, DefaultTemplate()))
	assert.Equal(t, "M2", c.MovieID)
}

func TestCheckoutDuplicateResponseAppliedOnce(t *testing.T) {
	c := NewCheckout("M1", movieShowTimes(), june1)
	req, err := c.SelectTime("10:00", time.UTC)
	require.NoError(t, err)
	assert.True(t, c.ApplySeats(req, DefaultTemplate()))
	assert.False(t, c.ApplySeats(req, nil))
	assert.Len(t, c.Available, 100)
}

func TestCheckoutDateChangeClearsSelection(t *testing.T) {
	c := loadedCheckout(t)
	require.NoError(t, c.ToggleSeat(Seat{"B", 5}))
	c.Cart.Increment("p1")

	c.SelectDate(june1.AddDate(0, 0, 1))
	assert.Empty(t, c.Chosen)
	assert.Equal(t, 1, c.Cart.Quantity("p1"), "cart survives a date change")
	assert.Equal(t, []string{"10:00"}, c.Times(time.UTC))
}

func TestCheckoutToggleSeat(t *testing.T) {
	c := NewCheckout("M1", movieShowTimes(), june1)
	assert.ErrorIs(t, c.ToggleSeat(Seat{"A", 1}), ErrSeatsNotLoaded)

	c = loadedCheckout(t, Seat{"A", 1}, Seat{"A", 2})
	assert.ErrorIs(t, c.ToggleSeat(Seat{"A", 1}), ErrSeatReserved)
	assert.ErrorIs(t, c.ToggleSeat(Seat{"K", 1}), ErrUnknownSeat)

	require.NoError(t, c.ToggleSeat(Seat{"B", 5}))
	assert.Equal(t, []Seat{{"B", 5}}, c.Chosen)
	require.NoError(t, c.ToggleSeat(Seat{"B", 5}))
	assert.Empty(t, c.Chosen)

	g := c.Grid()
	for _, cell := range g.Cells {
		assert.Equal(t, cell.Seat == Seat{"A", 1} || cell.Seat == Seat{"A", 2}, cell.Reserved, cell.Label)
		assert.False(t, cell.Chosen)
	}
}

func TestCheckoutSelectAllAvailable(t *testing.T) {
	c := NewCheckout("M1", movieShowTimes(), june1)
	assert.ErrorIs(t, c.SelectAllAvailable(), ErrSeatsNotLoaded)

	c = loadedCheckout(t, Seat{"A", 1}, Seat{"A", 2})
	require.NoError(t, c.SelectAllAvailable())
	assert.Len(t, c.Chosen, 98)
	for _, r := range c.Reserved() {
		assert.False(t, Contains(c.Chosen, r))
	}
}

func TestCheckoutCompose(t *testing.T) {
	c := NewCheckout("M1", movieShowTimes(), june1)
	_, err := c.Compose()
	assert.ErrorIs(t, err, ErrNoShowTime)

	c = loadedCheckout(t)
	c.Cart.Increment("p1")
	_, err = c.Compose()
	assert.ErrorIs(t, err, ErrNoSeats)

	require.NoError(t, c.ToggleSeat(Seat{"A", 1}))
	require.NoError(t, c.ToggleSeat(Seat{"A", 2}))
	c.Cart.Increment("p1")
	order, err := c.Compose()
	require.NoError(t, err)
	assert.Equal(t, "s1", order.Tickets.ShowTimeID)
	assert.Len(t, order.Tickets.Tickets, 2)

	q := c.Quote([]model.Product{{ID: "p1", Price: 50000}}, 70000)
	assert.Equal(t, int64(240000), q.Total)
}

func TestCheckoutSurvivesJSONRoundTrip(t *testing.T) {
	c := loadedCheckout(t, Seat{"A", 1})
	require.NoError(t, c.ToggleSeat(Seat{"C", 3}))
	c.Cart.Increment("p1")

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	var back Checkout
	require.NoError(t, json.Unmarshal(raw, &back))

	assert.Equal(t, c.Chosen, back.Chosen)
	assert.Equal(t, c.Reserved(), back.Reserved())
	assert.Equal(t, 1, back.Cart.Quantity("p1"))
	assert.ErrorIs(t, back.ToggleSeat(Seat{"A", 1}), ErrSeatReserved)
}
