package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxQueued bounds each queue; older toasts are dropped first.
const maxQueued = 50

// RedisNotifier keeps one list per key under "<prefix>:<key>".
type RedisNotifier struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisNotifier(rdb *redis.Client, prefix string, ttl time.Duration) *RedisNotifier {
	if prefix == "" {
		prefix = "toasts"
	}
	return &RedisNotifier{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (n *RedisNotifier) Push(ctx context.Context, key string, t Toast) error {
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode toast: %w", err)
	}
	k := n.prefix + ":" + key
	_, err = n.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, k, b)
		p.LTrim(ctx, k, -maxQueued, -1)
		if n.ttl > 0 {
			p.Expire(ctx, k, n.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("push toast: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Drain(ctx context.Context, key string) ([]Toast, error) {
	k := n.prefix + ":" + key
	var lr *redis.StringSliceCmd
	_, err := n.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		lr = p.LRange(ctx, k, 0, -1)
		p.Del(ctx, k)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("drain toasts: %w", err)
	}
	out := make([]Toast, 0, len(lr.Val()))
	for _, raw := range lr.Val() {
		var t Toast
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
