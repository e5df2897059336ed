package notify

import (
	"context"
	"sync"
)

// MemoryNotifier is the in-process fallback for RedisNotifier.
type MemoryNotifier struct {
	mu     sync.Mutex
	queues map[string][]Toast
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{queues: map[string][]Toast{}}
}

func (n *MemoryNotifier) Push(_ context.Context, key string, t Toast) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	q := append(n.queues[key], t)
	if len(q) > maxQueued {
		q = q[len(q)-maxQueued:]
	}
	n.queues[key] = q
	return nil
}

func (n *MemoryNotifier) Drain(_ context.Context, key string) ([]Toast, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	q := n.queues[key]
	delete(n.queues, key)
	if q == nil {
		q = []Toast{}
	}
	return q, nil
}
