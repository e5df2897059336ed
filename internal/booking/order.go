package booking

import (
	"errors"
	"strconv"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// DefaultSeatPrice is the price of one ticket.  It is a client-side
// constant; the backend remains authoritative for what is charged.
const DefaultSeatPrice int64 = 80000

var (
	// ErrNoSeats is returned when an order is composed without seats.
	ErrNoSeats = errors.New("no seats chosen")
	// ErrNoShowTime is returned when an order is composed without a showtime.
	ErrNoShowTime = errors.New("no showtime chosen")
)

// Compose builds the order payload from the chosen showtime, seats and
// cart.  It refuses to build anything when seats or showtime are missing.
func Compose(showTime *model.ShowTime, chosen []Seat, cart Cart) (model.PlaceOrder, error) {
	if showTime == nil || showTime.ID == "" {
		return model.PlaceOrder{}, ErrNoShowTime
	}
	if len(chosen) == 0 {
		return model.PlaceOrder{}, ErrNoSeats
	}
	tickets := make([]model.TicketSeat, 0, len(chosen))
	for _, s := range chosen {
		tickets = append(tickets, model.TicketSeat{SeatRow: s.Row, SeatNumber: strconv.Itoa(s.Number)})
	}
	return model.PlaceOrder{
		Products: cart.Lines(),
		Tickets: model.TicketGroup{
			ShowTimeID: showTime.ID,
			Tickets:    tickets,
		},
	}, nil
}

// Total is seats*seatPrice plus the catalog price of every product line.
func Total(order model.PlaceOrder, products []model.Product, seatPrice int64) int64 {
	return int64(len(order.Tickets.Tickets))*seatPrice + linesTotal(order.Products, products)
}

// QuoteLine is one row of the price breakdown shown before payment.
type QuoteLine struct {
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Amount    int64  `json:"amount"`
}

// Quote is the displayed breakdown of a checkout.
type Quote struct {
	Seats    []QuoteLine `json:"seats"`
	Products []QuoteLine `json:"products"`
	Total    int64       `json:"total"`
}

// NewQuote prices the chosen seats and the cart.  Unknown products are
// left out of both the lines and the total.
func NewQuote(chosen []Seat, cart Cart, products []model.Product, seatPrice int64) Quote {
	q := Quote{Seats: make([]QuoteLine, 0, len(chosen)), Products: make([]QuoteLine, 0, cart.Len())}
	for _, s := range chosen {
		q.Seats = append(q.Seats, QuoteLine{Label: s.ID(), Quantity: 1, UnitPrice: seatPrice, Amount: seatPrice})
		q.Total += seatPrice
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, l := range cart.Lines() {
		p, ok := byID[l.ProductID]
		if !ok {
			continue
		}
		amount := p.Price * int64(l.Quantity)
		q.Products = append(q.Products, QuoteLine{Label: p.Name, Quantity: l.Quantity, UnitPrice: p.Price, Amount: amount})
		q.Total += amount
	}
	return q
}
