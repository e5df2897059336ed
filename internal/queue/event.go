// Package queue defines the messages exchanged over RabbitMQ and the
// consumer that turns them into receipts.
package queue

import (
	"time"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// OrderPlacedQueue is the durable queue carrying OrderPlacedEvent.
const OrderPlacedQueue = "order.placed"

// OrderPlacedEvent is published after the backend accepted an order.  It
// carries everything the receipt journal needs so the consumer never calls
// back into the backend.
type OrderPlacedEvent struct {
	OrderID    string              `json:"order_id"`
	UserID     string              `json:"user_id"`
	Email      string              `json:"email,omitempty"`
	MovieID    string              `json:"movie_id"`
	MovieTitle string              `json:"movie_title,omitempty"`
	ShowTimeID string              `json:"show_time_id"`
	StartsAt   string              `json:"starts_at,omitempty"`
	Seats      []string            `json:"seats"`
	Products   []model.ProductLine `json:"products"`
	Total      int64               `json:"total"`
	PlacedAt   time.Time           `json:"placed_at"`
}

// Receipt converts the event into the row stored by the journal.
func (e OrderPlacedEvent) Receipt() model.Receipt {
	return model.Receipt{
		OrderID:    e.OrderID,
		UserID:     e.UserID,
		Email:      e.Email,
		MovieID:    e.MovieID,
		MovieTitle: e.MovieTitle,
		ShowTimeID: e.ShowTimeID,
		StartsAt:   e.StartsAt,
		Seats:      e.Seats,
		Products:   e.Products,
		Total:      e.Total,
		PlacedAt:   e.PlacedAt,
	}
}
