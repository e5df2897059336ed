package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the single-process fallback used when Redis is not
// reachable.  Sessions are stored encoded so callers never share state.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	data    []byte
	expires time.Time
}

// NewMemoryStore creates an empty store.  A ttl of zero keeps sessions
// forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: map[string]memEntry{}, now: time.Now}
}

func (s *MemoryStore) put(sess *Session) error {
	b, err := encode(sess)
	if err != nil {
		return err
	}
	var exp time.Time
	if s.ttl > 0 {
		exp = s.now().Add(s.ttl)
	}
	s.entries[sess.ID] = memEntry{data: b, expires: exp}
	return nil
}

// load must be called with mu held.
func (s *MemoryStore) load(id string) (*Session, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	return decode(e.data)
}

func (s *MemoryStore) Create(_ context.Context, in Session) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := newSession(in, s.now())
	if err := s.put(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(id)
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = s.now()
	if err := s.put(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.load(id); err != nil {
		return err
	}
	delete(s.entries, id)
	return nil
}

// Sweep drops expired sessions.  It is called periodically by the server.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, e := range s.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}
