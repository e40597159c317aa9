package ratelimiter

import (
	"net/http"
	"strconv"
	"time"
)

// KeyFunc picks the bucket for a request.
type KeyFunc func(r *http.Request) string

// DenyFunc writes the response for a throttled request.
type DenyFunc func(w http.ResponseWriter, r *http.Request, res Result)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	deny    DenyFunc
	onError func(r *http.Request, err error)
}

// WithDenyHandler overrides the plain-text 429 response.
func WithDenyHandler(fn DenyFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.deny = fn
		}
	}
}

// WithErrorHook is called when the limiter fails. The request is let through.
func WithErrorHook(fn func(r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onError = fn
		}
	}
}

// Middleware rejects requests once the bucket picked by key is empty and
// reports the budget in X-RateLimit-* headers.
func Middleware(l *Limiter, key KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		deny: func(w http.ResponseWriter, _ *http.Request, _ Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
		onError: func(*http.Request, error) {},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := l.Allow(r.Context(), key(r))
			if err != nil {
				cfg.onError(r, err)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				if wait := int(time.Until(res.ResetAt).Seconds()); wait > 0 {
					h.Set("Retry-After", strconv.Itoa(wait))
				}
				cfg.deny(w, r, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
