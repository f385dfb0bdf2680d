package reddit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// PacingLimiter spaces Reddit API requests. It combines a token bucket
// enforcing the steady request interval with a backoff window recorded
// from 429 responses.
type PacingLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewPacingLimiter creates a limiter that allows one request per
// interval. A non-positive interval disables pacing (used in tests).
func NewPacingLimiter(interval time.Duration) *PacingLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &PacingLimiter{
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until a request can be made without exceeding the pace.
// It also respects any backoff period set by RecordRateLimitError.
func (p *PacingLimiter) Wait(ctx context.Context) error {
	p.mu.Lock()
	retryAt := p.retryAt
	p.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return p.limiter.Wait(ctx)
}

// RecordRateLimitError sets a backoff window after a 429 response.
// Subsequent Wait calls block until the window passes.
func (p *PacingLimiter) RecordRateLimitError(backoff time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if backoff <= 0 {
		return
	}
	retryAt := time.Now().Add(backoff)
	if retryAt.After(p.retryAt) {
		p.retryAt = retryAt
	}
}
