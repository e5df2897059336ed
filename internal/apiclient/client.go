// Package apiclient is a typed client for the cinema backend REST API.
// Every call takes a context; the caller's backend bearer token travels in
// that context (see WithToken).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxBody caps how much of a response is read into memory.
const maxBody = 4 << 20

type tokenKey struct{}

// WithToken returns a context that authenticates backend calls with the
// given bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token stored by WithToken, or "".
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}

// Client talks to the backend.  It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a client for baseURL (e.g. "https://localhost:7193/api").
// A nil logger disables request logging.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.Named("apiclient"),
	}
}

// NewWithHTTPClient is like New but uses hc for transport.
func NewWithHTTPClient(baseURL string, hc *http.Client, log *zap.Logger) *Client {
	c := New(baseURL, 0, log)
	c.http = hc
	return c
}

// do performs one request.  in is JSON-encoded when non-nil; out receives
// the decoded body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend unreachable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	c.log.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if err := statusError(method, path, resp.StatusCode, raw); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errEmptyBody
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func statusError(method, path string, code int, body []byte) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case code == http.StatusConflict:
		return fmt.Errorf("%s %s: %w", method, path, ErrConflict)
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%s %s: %w: %s", method, path, ErrInvalid, snippet(body))
	default:
		return &StatusError{Method: method, Path: path, Code: code, Body: snippet(body)}
	}
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// getList decodes a JSON array; an empty or null body is an empty list.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	if errors.Is(err, errEmptyBody) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// getOne decodes a single document; an empty or null body is ErrNotFound.
func getOne[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var out T
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// send issues a POST or PUT and decodes the echoed document when the
// backend returns one.
func send[T any](ctx context.Context, c *Client, method, path string, in any) (*T, error) {
	var out T
	err := c.do(ctx, method, path, in, &out)
	if errors.Is(err, errEmptyBody) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// remove issues a DELETE; 200 and 204 are both success.
func (c *Client) remove(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
