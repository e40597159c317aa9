package ratelimiter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/foodorder/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T, requests int, window time.Duration, opts ...ratelimiter.Option) *ratelimiter.Limiter {
	t.Helper()
	opts = append([]ratelimiter.Option{ratelimiter.WithCleanupInterval(0)}, opts...)
	l, err := ratelimiter.New(ratelimiter.Config{Enabled: true, Requests: requests, Window: window}, opts...)
	require.NoError(t, err)
	t.Cleanup(l.Close)
	return l
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive requests", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimiter.New(ratelimiter.Config{Requests: 0, Window: time.Minute})
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})

	t.Run("rejects non-positive window", func(t *testing.T) {
		t.Parallel()
		_, err := ratelimiter.New(ratelimiter.Config{Requests: 1})
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	})
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	t.Run("budget is spent then refilled after the window", func(t *testing.T) {
		t.Parallel()

		c := &clock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
		l := newLimiter(t, 2, time.Hour, ratelimiter.WithClock(c.Now))
		ctx := context.Background()

		res, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, 1, res.Remaining)
		assert.Equal(t, 2, res.Limit)
		assert.Equal(t, c.Now().Add(time.Hour), res.ResetAt)

		res, _ = l.Allow(ctx, "a")
		assert.True(t, res.Allowed())
		assert.Equal(t, 0, res.Remaining)

		res, _ = l.Allow(ctx, "a")
		assert.False(t, res.Allowed())
		res, _ = l.Allow(ctx, "a")
		assert.False(t, res.Allowed())
		assert.Equal(t, -1, res.Remaining)

		c.Advance(time.Hour)
		res, _ = l.Allow(ctx, "a")
		assert.True(t, res.Allowed())
		assert.Equal(t, 1, res.Remaining)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		l := newLimiter(t, 1, time.Hour)
		ctx := context.Background()

		res, _ := l.Allow(ctx, "a")
		assert.True(t, res.Allowed())
		res, _ = l.Allow(ctx, "a")
		assert.False(t, res.Allowed())
		res, _ = l.Allow(ctx, "b")
		assert.True(t, res.Allowed())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		l := newLimiter(t, 1, time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := l.Allow(ctx, "a")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("concurrent callers never exceed the budget", func(t *testing.T) {
		t.Parallel()

		l := newLimiter(t, 10, time.Hour)
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			allowed int
		)
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := l.Allow(context.Background(), "shared")
				if err == nil && res.Allowed() {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 10, allowed)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	byHeader := func(r *http.Request) string { return r.Header.Get("X-Client") }
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("sets headers and rejects over budget", func(t *testing.T) {
		t.Parallel()

		h := ratelimiter.Middleware(newLimiter(t, 1, time.Hour), byHeader)(ok)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Client", "one")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("custom deny handler", func(t *testing.T) {
		t.Parallel()

		var denied ratelimiter.Result
		h := ratelimiter.Middleware(newLimiter(t, 1, time.Hour), byHeader,
			ratelimiter.WithDenyHandler(func(w http.ResponseWriter, _ *http.Request, res ratelimiter.Result) {
				denied = res
				w.WriteHeader(http.StatusTeapot)
			}),
		)(ok)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, 1, denied.Limit)
	})

	t.Run("limiter failure lets the request through", func(t *testing.T) {
		t.Parallel()

		var hookErr error
		h := ratelimiter.Middleware(newLimiter(t, 1, time.Hour), byHeader,
			ratelimiter.WithErrorHook(func(_ *http.Request, err error) { hookErr = err }),
		)(ok)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.ErrorIs(t, hookErr, context.Canceled)
	})
}
