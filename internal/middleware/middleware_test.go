package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/cinema-storefront/internal/apiclient"
	"github.com/iliyamo/cinema-storefront/internal/config"
	"github.com/iliyamo/cinema-storefront/internal/model"
	"github.com/iliyamo/cinema-storefront/internal/utils"
)

const secret = "test-secret"

func token(t *testing.T, u model.User) string {
	t.Helper()
	at, err := utils.NewSessionToken(secret, u, "backend-"+u.ID, time.Hour)
	require.NoError(t, err)
	return at.Token
}

func serve(e *echo.Echo, method, path, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestJWTAuth(t *testing.T) {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		tok := apiclientToken(c)
		return c.JSON(http.StatusOK, echo.Map{"id": UserID(c), "role": Role(c), "btk": tok})
	}, JWTAuth(secret))

	rec := serve(e, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodGet, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodGet, "/me", token(t, model.User{ID: "u1", Email: "a@b.c"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"u1","role":"CUSTOMER","btk":"backend-u1"}`, rec.Body.String())
}

func TestOptionalJWT(t *testing.T) {
	e := echo.New()
	e.GET("/who", func(c echo.Context) error { return c.String(http.StatusOK, rateKeyUser(c)) }, OptionalJWT(secret))

	assert.Equal(t, "anon", serve(e, http.MethodGet, "/who", "").Body.String())
	assert.Equal(t, "anon", serve(e, http.MethodGet, "/who", "bad").Body.String())
	assert.Equal(t, "u7", serve(e, http.MethodGet, "/who", token(t, model.User{ID: "u7"})).Body.String())
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	e.GET("/admin", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
		JWTAuth(secret), RequireRole(model.RoleAdmin))

	assert.Equal(t, http.StatusForbidden, serve(e, http.MethodGet, "/admin", token(t, model.User{ID: "u1"})).Code)
	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/admin", token(t, model.User{ID: "u2", Position: "Manager"})).Code)
}

func TestTokenBucket(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Minute,
		TTL: 10 * time.Minute, Prefix: "rl", KeyStrategy: "ip",
	}
	e := echo.New()
	e.Use(NewTokenBucket(cfg, rdb, zap.NewNop()))
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	first := serve(e, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/x", "").Code)

	blocked := serve(e, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))
}

func TestTokenBucketRefills(t *testing.T) {
	_, rdb := newRedis(t)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	b := tokenBucket{
		cfg: config.RateLimitConfig{Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute},
		rdb: rdb,
		now: func() time.Time { return now },
	}
	ctx := t.Context()

	d, err := b.take(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.allowed)
	d, err = b.take(ctx, "k")
	require.NoError(t, err)
	assert.False(t, d.allowed)
	assert.Equal(t, time.Second, d.retry)

	now = now.Add(time.Second)
	d, err = b.take(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.allowed)
}

func TestTokenBucketDisabledWithoutRedis(t *testing.T) {
	e := echo.New()
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, zap.NewNop()))
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/x", "").Code)
	}
}

func TestRedisCache(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled: true, TTL: time.Minute, Prefix: "catalog", MaxBodyBytes: 1 << 20,
		Paths: map[string]bool{"/movies/:id": true},
	}
	calls := 0
	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb, zap.NewNop()))
	e.GET("/movies/:id", func(c echo.Context) error {
		calls++
		if c.Param("id") == "missing" {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id")})
	})
	e.GET("/other", func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, "x")
	})

	miss := serve(e, http.MethodGet, "/movies/M1", "")
	assert.Equal(t, "MISS", miss.Header().Get("X-Cache"))
	hit := serve(e, http.MethodGet, "/movies/M1", "")
	assert.Equal(t, "HIT", hit.Header().Get("X-Cache"))
	assert.Equal(t, http.StatusOK, hit.Code)
	assert.JSONEq(t, `{"id":"M1"}`, hit.Body.String())
	assert.Contains(t, hit.Header().Get(echo.HeaderContentType), "application/json")
	assert.Equal(t, 1, calls)

	serve(e, http.MethodGet, "/movies/missing", "")
	serve(e, http.MethodGet, "/movies/missing", "")
	assert.Equal(t, 3, calls, "errors are not cached")

	serve(e, http.MethodGet, "/other", "")
	serve(e, http.MethodGet, "/other", "")
	assert.Equal(t, 5, calls, "unlisted routes are not cached")

	require.NoError(t, InvalidateCache(t.Context(), cfg, rdb))
	assert.Equal(t, "MISS", serve(e, http.MethodGet, "/movies/M1", "").Header().Get("X-Cache"))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway, "upstream") })

	serve(e, http.MethodGet, "/ok", "")
	rec := serve(e, http.MethodGet, "/fail", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(200), entries[0].ContextMap()["status"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "/fail", entries[1].ContextMap()["path"])
}

func apiclientToken(c echo.Context) string {
	return apiclient.TokenFrom(BackendContext(c))
}
