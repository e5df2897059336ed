package model

import (
	"errors"
	"time"
)

// ShowTime is a scheduled screening of a movie in a room.  StartTime and
// EndTime are kept as the strings the backend sends; use Start and End to
// obtain instants.
type ShowTime struct {
	ID           string `json:"id"`
	MovieID      string `json:"movieId"`
	RoomNumberID int    `json:"roomNumberId"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Movie        *Movie `json:"movie,omitempty"`
}

// ShowTimeInput is the body accepted by POST/PUT /ShowTimes.
type ShowTimeInput struct {
	MovieID      string `json:"movieId" validate:"required"`
	RoomNumberID int    `json:"roomNumberId" validate:"required,gt=0"`
	StartTime    string `json:"startTime" validate:"required"`
}

// ErrBadTimestamp is returned when a backend timestamp matches none of the
// accepted layouts.
var ErrBadTimestamp = errors.New("unrecognised timestamp")

// zone-less layouts are interpreted in the caller's location
var localLayouts = []string{
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses the timestamp formats emitted by the backend.
// RFC 3339 values keep their offset; zone-less values are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadTimestamp
}

// Start returns the start instant of the showtime in loc.
func (s ShowTime) Start(loc *time.Location) (time.Time, error) {
	return ParseTimestamp(s.StartTime, loc)
}

// End returns the end instant of the showtime in loc.
func (s ShowTime) End(loc *time.Location) (time.Time, error) {
	return ParseTimestamp(s.EndTime, loc)
}
