package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for 404 responses and for 2xx responses whose
	// body is empty or the JSON literal null.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned when the backend refuses an order, typically
	// because a seat was taken in the meantime.
	ErrConflict = errors.New("request conflicts with current state")
	// ErrUnauthorized is returned for 401 and 403 responses and for logins
	// rejected by the backend.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalid is returned when the backend rejects a request body.
	ErrInvalid = errors.New("request rejected by backend")
)

// errEmptyBody marks a 2xx response without a document.  It matches
// ErrNotFound so single-resource lookups report it as such, while list
// endpoints treat it as an empty list.
var errEmptyBody = fmt.Errorf("%w: empty response body", ErrNotFound)

// TransportError wraps failures that happened before a response was
// received: DNS, connection refused, timeouts, cancelled contexts.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError is returned for non-2xx responses that have no dedicated
// sentinel.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}
