package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-storefront/internal/booking"
	"github.com/iliyamo/cinema-storefront/internal/model"
)

var errAbort = errors.New("abort")

func testSession(userID string) Session {
	sts := []model.ShowTime{{ID: "s1", MovieID: "M1", StartTime: "2024-06-01T10:00:00"}}
	c := booking.NewCheckout("M1", sts, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	return Session{
		UserID:     userID,
		MovieTitle: "Dune",
		Products:   []model.Product{{ID: "p1", Name: "Popcorn", Price: 50000}},
		Checkout:   *c,
	}
}

func stores(t *testing.T) map[string]Store {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return map[string]Store{
		"redis":  NewRedisStore(rdb, "", time.Minute),
		"memory": NewMemoryStore(time.Minute),
	}
}

func TestStoreLifecycle(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sess, err := st.Create(ctx, testSession("u1"))
			require.NoError(t, err)
			require.NotEmpty(t, sess.ID)

			got, err := st.Get(ctx, sess.ID)
			require.NoError(t, err)
			assert.Equal(t, "u1", got.UserID)
			assert.Equal(t, "M1", got.Checkout.MovieID)
			assert.Equal(t, "Dune", got.MovieTitle)
			assert.Len(t, got.Products, 1)

			updated, err := st.Update(ctx, sess.ID, func(s *Session) error {
				s.Checkout.Cart.Increment("p1")
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, 1, updated.Checkout.Cart.Quantity("p1"))

			got, err = st.Get(ctx, sess.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, got.Checkout.Cart.Quantity("p1"))

			require.NoError(t, st.Delete(ctx, sess.ID))
			_, err = st.Get(ctx, sess.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, st.Delete(ctx, sess.ID), ErrNotFound)
		})
	}
}

func TestStoreUpdateErrorWritesNothing(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sess, err := st.Create(ctx, testSession("u1"))
			require.NoError(t, err)

			_, err = st.Update(ctx, sess.ID, func(s *Session) error {
				s.Checkout.Cart.Increment("p1")
				return errAbort
			})
			assert.ErrorIs(t, err, errAbort)

			got, err := st.Get(ctx, sess.ID)
			require.NoError(t, err)
			assert.Zero(t, got.Checkout.Cart.Quantity("p1"))
		})
	}
}

func TestStoreUpdateUnknown(t *testing.T) {
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			called := false
			_, err := st.Update(context.Background(), "nope", func(*Session) error {
				called = true
				return nil
			})
			assert.ErrorIs(t, err, ErrNotFound)
			assert.False(t, called)
		})
	}
}

func TestStoreConcurrentUpdates(t *testing.T) {
	const workers, perWorker = 4, 5
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sess, err := st.Create(ctx, testSession("u1"))
			require.NoError(t, err)

			var wg sync.WaitGroup
			errs := make(chan error, workers*perWorker)
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < perWorker; i++ {
						_, err := st.Update(ctx, sess.ID, func(s *Session) error {
							s.Checkout.Cart.Increment("p1")
							return nil
						})
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			got, err := st.Get(ctx, sess.ID)
			require.NoError(t, err)
			assert.Equal(t, workers*perWorker, got.Checkout.Cart.Quantity("p1"))
		})
	}
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	st := NewRedisStore(rdb, "checkout", time.Minute)
	ctx := context.Background()

	sess, err := st.Create(ctx, testSession("u1"))
	require.NoError(t, err)
	assert.True(t, mr.Exists("checkout:"+sess.ID))
	assert.Equal(t, time.Minute, mr.TTL("checkout:"+sess.ID))

	mr.FastForward(40 * time.Second)
	_, err = st.Update(ctx, sess.ID, func(*Session) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL("checkout:"+sess.ID), "writes refresh the ttl")

	mr.FastForward(2 * time.Minute)
	_, err = st.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	st := NewMemoryStore(time.Minute)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }
	ctx := context.Background()

	a, err := st.Create(ctx, testSession("u1"))
	require.NoError(t, err)
	_, err = st.Create(ctx, testSession("u2"))
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = st.Update(ctx, a.ID, func(*Session) error { return nil })
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, st.Sweep())
	_, err = st.Get(ctx, a.ID)
	assert.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = st.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoredStateIsIsolated(t *testing.T) {
	st := NewMemoryStore(0)
	ctx := context.Background()
	sess, err := st.Create(ctx, testSession("u1"))
	require.NoError(t, err)

	got, err := st.Get(ctx, sess.ID)
	require.NoError(t, err)
	got.Checkout.Cart.Increment("p1")

	again, err := st.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Zero(t, again.Checkout.Cart.Quantity("p1"))
}
