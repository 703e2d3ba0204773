// Package ratelimit provides best-effort fixed-window request counting per
// client identifier. It deters abuse of the AI-backed endpoints; it is not
// billing-grade accounting.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Result is the outcome of a limit check. RetryAfter is in whole seconds,
// rounded up, and only set when the request is denied.
type Result struct {
	Allowed    bool
	RetryAfter int
}

// Limiter gates how often each client identifier may invoke an operation.
type Limiter interface {
	Check(ctx context.Context, identifier, operation string, max int, window time.Duration) (Result, error)
}

type entry struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a process-scoped counter map with an injected clock so
// window behavior is testable without real timers. Counters for different
// server instances are independent; use the Redis limiter when running more
// than one replica.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	logger  zerolog.Logger
}

func NewMemoryLimiter(now func() time.Time, logger zerolog.Logger) *MemoryLimiter {
	if now == nil {
		now = time.Now
	}
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		now:     now,
		logger:  logger.With().Str("component", "rate_limiter").Logger(),
	}
}

var _ Limiter = (*MemoryLimiter)(nil)

// Check implements Limiter. A fresh or expired window starts a new count; at
// the limit the caller gets the seconds remaining until the window resets.
func (l *MemoryLimiter) Check(_ context.Context, identifier, operation string, max int, window time.Duration) (Result, error) {
	key := identifier + ":" + operation
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.After(e.resetTime) {
		l.entries[key] = &entry{count: 1, resetTime: now.Add(window)}
		return Result{Allowed: true}, nil
	}

	if e.count < max {
		e.count++
		return Result{Allowed: true}, nil
	}

	retryAfter := int(math.Ceil(e.resetTime.Sub(now).Seconds()))
	return Result{Allowed: false, RetryAfter: retryAfter}, nil
}

// Sweep removes expired entries and returns how many were evicted. It runs on
// a fixed cadence independent of request traffic so the map stays bounded even
// when a noisy client goes quiet.
func (l *MemoryLimiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, e := range l.entries {
		if now.After(e.resetTime) {
			delete(l.entries, key)
			evicted++
		}
	}
	return evicted
}

// Run blocks until context cancellation, sweeping every interval.
func (l *MemoryLimiter) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				l.logger.Debug().Int("evicted", n).Msg("swept expired rate-limit entries")
			}
		}
	}
}
