package model

// Seat describes a physical seat of a room as the backend reports it.
// Seats are identified by row letter and seat number.
type Seat struct {
	// ID is the backend's key; empty in responses that only carry the pair.
	ID           string `json:"id,omitempty"`
	RowName      string `json:"rowName"`    // single uppercase letter
	SeatNumber   int    `json:"seatNumber"` // 1-based within the row
	RoomNumberID int    `json:"roomNumberId,omitempty"`
}

// Room groups the seats of one screening room.
type Room struct {
	ID         string `json:"id,omitempty"`
	RoomNumber int    `json:"roomNumber"`
	Seats      []Seat `json:"seats,omitempty"`
}
