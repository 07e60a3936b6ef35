// Package ratelimit throttles outbound calls to third-party APIs.
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the proactive throttle rate for chat completions (requests/sec).
	DefaultRate = 1.0

	// DefaultBurst allows a short burst of requests before throttling.
	DefaultBurst = 3

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// Limiter combines a token bucket with a cool-down set by the remote API.
type Limiter struct {
	mu         sync.Mutex
	bucket     *rate.Limiter
	blockUntil time.Time
}

// New creates a limiter allowing perSecond requests with the given burst.
// A non-positive perSecond disables proactive throttling.
func New(perSecond float64, burst int) *Limiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{bucket: rate.NewLimiter(limit, burst)}
}

// Wait blocks until it's safe to make a request or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.bucket.Wait(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	until := l.blockUntil
	l.mu.Unlock()

	if wait := time.Until(until); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil
}

// Allow reports whether a request may happen now without waiting.
// It consumes a token when it returns true.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	blocked := time.Now().Before(l.blockUntil)
	l.mu.Unlock()
	if blocked {
		return false
	}
	return l.bucket.Allow()
}

// UpdateFromResponse records a Retry-After cool-down from a 429 or 503 response.
func (l *Limiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return
	}
	retryAfter := resp.Header.Get(HeaderRetryAfter)
	if retryAfter == "" {
		return
	}
	seconds, err := strconv.Atoi(retryAfter)
	if err != nil || seconds <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	until := time.Now().Add(time.Duration(seconds) * time.Second)
	if until.After(l.blockUntil) {
		l.blockUntil = until
	}
}
