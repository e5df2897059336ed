// Package notify queues user-facing notifications ("toasts") until the
// browser collects them.  Handlers push toasts for failures and for
// successful orders; GET /v1/notifications drains them.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Toast types.
const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

// Toast is one notification.
type Toast struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// New builds a toast with a fresh id.
func New(typ, title, message string) Toast {
	return Toast{
		ID:        uuid.NewString(),
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// Error is shorthand for New(TypeError, ...).
func Error(title, message string) Toast { return New(TypeError, title, message) }

// Success is shorthand for New(TypeSuccess, ...).
func Success(title, message string) Toast { return New(TypeSuccess, title, message) }

// Notifier stores toasts per key (usually a user id).  Drain returns the
// queued toasts oldest first and empties the queue.
type Notifier interface {
	Push(ctx context.Context, key string, t Toast) error
	Drain(ctx context.Context, key string) ([]Toast, error)
}
