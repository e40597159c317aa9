// Package ratelimiter throttles callers with a token bucket per key.
//
// Buckets live in process memory, so limits are per instance. A bucket holds
// up to Config.Requests tokens and is refilled completely once per
// Config.Window.
package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrInvalidConfig = errors.New("invalid rate limit configuration")

// Config holds the per-client budget.
type Config struct {
	Enabled  bool          `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
}

// Result is the outcome of one Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the call fit in the budget.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Limiter tracks one bucket per key.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithCleanupInterval sets how often idle buckets are dropped. Zero disables
// the background sweep.
func WithCleanupInterval(d time.Duration) Option {
	return func(l *Limiter) {
		l.cleanupInterval = d
	}
}

// New creates a Limiter. Call Close to stop the idle-bucket sweep.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if cfg.Requests <= 0 {
		return nil, fmt.Errorf("%w: requests must be positive, got %d", ErrInvalidConfig, cfg.Requests)
	}
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, cfg.Window)
	}

	l := &Limiter{
		cfg:             cfg,
		now:             time.Now,
		buckets:         make(map[string]*bucket),
		cleanupInterval: 5 * time.Minute,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.cleanupInterval > 0 {
		go l.sweep()
	}
	return l, nil
}

// Allow consumes one token for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Requests, lastRefill: now}
		l.buckets[key] = b
	}
	if now.Sub(b.lastRefill) >= l.cfg.Window {
		b.tokens = l.cfg.Requests
		b.lastRefill = now
	}

	// An empty bucket stays at -1 until the next refill.
	if b.tokens >= 0 {
		b.tokens--
	}
	b.lastAccess = now

	return Result{
		Limit:     l.cfg.Requests,
		Remaining: b.tokens,
		ResetAt:   b.lastRefill.Add(l.cfg.Window),
	}, nil
}

// Close stops the idle-bucket sweep. Safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.removeIdle()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) removeIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, b := range l.buckets {
		if now.Sub(b.lastAccess) > l.cfg.Window {
			delete(l.buckets, key)
		}
	}
}
