package model

// Order is a placed order as listed in the back office.  Total is
// computed by the backend.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customerId,omitempty"`
	Customer   *Customer   `json:"customer,omitempty"`
	Total      float64     `json:"total"`
	Status     bool        `json:"status"`
	OrderItems []OrderItem `json:"orderItems,omitempty"`
	Tickets    []Ticket    `json:"tickets,omitempty"`
}

// OrderItem is one concession line of an order.
type OrderItem struct {
	ID        string   `json:"id,omitempty"`
	OrderID   string   `json:"orderId,omitempty"`
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
}

// Ticket is one seat of an order for one showtime.
type Ticket struct {
	ID         string    `json:"id,omitempty"`
	OrderID    string    `json:"orderId,omitempty"`
	SeatID     string    `json:"seatId,omitempty"`
	ShowTimeID string    `json:"showtimeId,omitempty"`
	ShowTime   *ShowTime `json:"showTime,omitempty"`
	Seat       Seat      `json:"seat"`
	Total      float64   `json:"total,omitempty"`
	Status     bool      `json:"status"`
}

// PlaceOrder is the body of POST /Tickets/placeOrder.  It is built in one
// piece by the checkout workflow and never sent partially.
type PlaceOrder struct {
	Products []ProductLine `json:"products"`
	Tickets  TicketGroup   `json:"tickets"`
}

// ProductLine is a (product id, quantity) pair; Quantity is always >= 1.
type ProductLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// TicketGroup lists the seats booked for a single showtime.
type TicketGroup struct {
	ShowTimeID string       `json:"showTimeId"`
	Tickets    []TicketSeat `json:"tickets"`
}

// TicketSeat is a row/number pair.  The backend expects the number as a
// string.
type TicketSeat struct {
	SeatRow    string `json:"seatRow"`
	SeatNumber string `json:"seatNumber"`
}

// PlaceOrderResult is the success body of POST /Tickets/placeOrder.
type PlaceOrderResult struct {
	Order struct {
		ID string `json:"id"`
	} `json:"order"`
}
