// Package session persists checkout sessions between requests.  A session
// is owned by one user and holds the whole booking.Checkout state; every
// change goes through Update, which applies a mutation atomically.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-storefront/internal/booking"
	"github.com/iliyamo/cinema-storefront/internal/model"
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("checkout session not found")
	// ErrBusy is returned when concurrent writers kept invalidating an
	// Update until the retry budget ran out.
	ErrBusy = errors.New("checkout session is busy")
)

// Session is one checkout in progress.  MovieTitle and Products are
// snapshots taken when the checkout starts; prices quoted during the
// checkout come from Products.
type Session struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	MovieTitle string           `json:"movie_title,omitempty"`
	Products   []model.Product  `json:"products"`
	Checkout   booking.Checkout `json:"checkout"`
	// Submitting is set while an order for this checkout is in flight.
	// SubmittedAt records when it was set so a lost release can expire.
	Submitting  bool      `json:"submitting,omitempty"`
	SubmittedAt time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store is implemented by RedisStore and MemoryStore.
type Store interface {
	// Create stores a copy of s under a fresh id and returns it.
	Create(ctx context.Context, s Session) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	// Update loads the session, calls fn and stores the result.  If fn
	// returns an error nothing is written and the error is returned as is.
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func newSession(s Session, now time.Time) *Session {
	s.ID = uuid.NewString()
	s.CreatedAt = now
	s.UpdatedAt = now
	return &s
}

func encode(s *Session) ([]byte, error) { return json.Marshal(s) }

func decode(b []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
