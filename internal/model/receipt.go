package model

import "time"

// Receipt is the storefront's own record of a placed order, written by the
// order.placed consumer and listed under /v1/my-receipts.
type Receipt struct {
	ID         uint64        `json:"id"`
	OrderID    string        `json:"order_id"`
	UserID     string        `json:"user_id"`
	Email      string        `json:"email,omitempty"`
	MovieID    string        `json:"movie_id"`
	MovieTitle string        `json:"movie_title,omitempty"`
	ShowTimeID string        `json:"show_time_id"`
	StartsAt   string        `json:"starts_at,omitempty"`
	Seats      []string      `json:"seats"`
	Products   []ProductLine `json:"products"`
	Total      int64         `json:"total"`
	PlacedAt   time.Time     `json:"placed_at"`
}
