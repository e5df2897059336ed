package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// env reads typed variables.  Values that are set but do not parse are
// recorded and reported by err; the default is returned in their place.
type env struct {
	missing []string
	bad     []error
}

func (e *env) must(k string) string {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		e.missing = append(e.missing, k)
	}
	return v
}

func (e *env) str(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func (e *env) boolean(k string, d bool) bool {
	v := os.Getenv(k)
	switch strings.ToLower(v) {
	case "":
		return d
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	e.bad = append(e.bad, fmt.Errorf("%s %q is not a boolean", k, v))
	return d
}

func (e *env) integer(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.bad = append(e.bad, fmt.Errorf("%s %q is not an integer", k, v))
		return d
	}
	return n
}

func (e *env) duration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		e.bad = append(e.bad, fmt.Errorf("%s %q is not a duration (e.g. 30s, 15m)", k, v))
		return d
	}
	return dur
}

func (e *env) list(k, d string) []string {
	var out []string
	for _, p := range strings.Split(e.str(k, d), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (e *env) err() error {
	errs := e.bad
	if len(e.missing) > 0 {
		errs = append([]error{fmt.Errorf("missing required env vars: %s", strings.Join(e.missing, ", "))}, errs...)
	}
	return errors.Join(errs...)
}
