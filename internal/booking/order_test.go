package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

func TestComposeRefusesIncompleteSelection(t *testing.T) {
	st := &model.ShowTime{ID: "s1"}
	cart := NewCart()
	cart.Increment("p1")

	_, err := Compose(st, nil, cart)
	assert.ErrorIs(t, err, ErrNoSeats)

	_, err = Compose(nil, []Seat{{"A", 1}}, cart)
	assert.ErrorIs(t, err, ErrNoShowTime)

	_, err = Compose(&model.ShowTime{}, []Seat{{"A", 1}}, cart)
	assert.ErrorIs(t, err, ErrNoShowTime)
}

func TestComposePayload(t *testing.T) {
	cart := NewCart()
	cart.Increment("p1")
	cart.Increment("p1")

	order, err := Compose(&model.ShowTime{ID: "s1"}, []Seat{{"A", 1}, {"A", 2}}, cart)
	require.NoError(t, err)
	assert.Equal(t, model.PlaceOrder{
		Products: []model.ProductLine{{ProductID: "p1", Quantity: 2}},
		Tickets: model.TicketGroup{
			ShowTimeID: "s1",
			Tickets: []model.TicketSeat{
				{SeatRow: "A", SeatNumber: "1"},
				{SeatRow: "A", SeatNumber: "2"},
			},
		},
	}, order)

	catalog := []model.Product{{ID: "p1", Price: 50000}}
	assert.Equal(t, int64(240000), Total(order, catalog, 70000))
}

func TestComposeEmptyCartSendsEmptyProducts(t *testing.T) {
	order, err := Compose(&model.ShowTime{ID: "s1"}, []Seat{{"C", 3}}, NewCart())
	require.NoError(t, err)
	assert.NotNil(t, order.Products)
	assert.Empty(t, order.Products)
	assert.Equal(t, DefaultSeatPrice, Total(order, nil, DefaultSeatPrice))
}

func TestNewQuote(t *testing.T) {
	cart := NewCart()
	cart.Increment("p1")
	cart.Increment("p1")
	cart.Increment("gone")
	catalog := []model.Product{{ID: "p1", Name: "Popcorn", Price: 50000}}

	q := NewQuote([]Seat{{"A", 1}, {"A", 2}}, cart, catalog, 70000)
	assert.Equal(t, int64(240000), q.Total)
	require.Len(t, q.Seats, 2)
	assert.Equal(t, "A1", q.Seats[0].Label)
	require.Len(t, q.Products, 1)
	assert.Equal(t, QuoteLine{Label: "Popcorn", Quantity: 2, UnitPrice: 50000, Amount: 100000}, q.Products[0])
}
