package config

import (
	"strings"
	"time"
)

// CacheConfig configures the Redis response cache placed in front of the
// catalogue endpoints (movies, products).  Only anonymous GET responses
// with status 200 are stored.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
	// Paths lists route patterns (echo's c.Path()) that may be cached.
	Paths map[string]bool
}

// LoadCacheConfig reads CACHE_* variables.
func LoadCacheConfig() (CacheConfig, error) {
	var e env
	cfg := CacheConfig{
		Enabled:      e.boolean("CACHE_ENABLED", true),
		TTL:          e.duration("CACHE_TTL", 60*time.Second),
		Prefix:       e.str("CACHE_PREFIX", "catalog"),
		MaxBodyBytes: e.integer("CACHE_MAX_BODY_BYTES", 1<<20),
		Paths:        map[string]bool{},
	}
	for _, p := range e.list("CACHE_PATHS", "/v1/movies,/v1/movies/:id,/v1/products") {
		cfg.Paths[strings.TrimRight(p, "/")] = true
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 60 * time.Second
	}
	return cfg, e.err()
}
