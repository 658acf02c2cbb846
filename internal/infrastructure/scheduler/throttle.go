package scheduler

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces outbound requests with a token bucket plus random jitter.
type Throttle struct {
	limiter *rate.Limiter
	jitter  time.Duration
}

// NewThrottle allows one request per interval with the given burst.
// A zero interval disables the bucket and leaves only the jitter.
func NewThrottle(interval, jitter time.Duration, burst int) *Throttle {
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &Throttle{
		limiter: rate.NewLimiter(limit, burst),
		jitter:  jitter,
	}
}

// Wait blocks until the next request may start or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	if t.jitter <= 0 {
		return nil
	}

	timer := time.NewTimer(rand.N(t.jitter))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
