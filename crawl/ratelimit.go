package crawl

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/tasanda/ceu"
	"golang.org/x/time/rate"
)

var _ ceu.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to each domain by a download delay.
// With jitter enabled the spacing is drawn uniformly from half to one and a
// half times the delay, so requests do not arrive on a fixed beat.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
	jitter   bool

	// extra returns the additional wait added after the limiter releases.
	extra func(max time.Duration) time.Duration
}

// NewDomainLimiter creates a new DomainLimiter. A zero delay disables limiting.
func NewDomainLimiter(delay time.Duration, jitter bool) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
		jitter:   jitter,
		extra: func(max time.Duration) time.Duration {
			if max <= 0 {
				return 0
			}
			return rand.N(max)
		},
	}
}

// Wait blocks until a request to domain may be sent.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.delay <= 0 {
		return ctx.Err()
	}

	interval := d.delay
	if d.jitter {
		interval = d.delay / 2
	}

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return err
	}
	if !d.jitter {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d.extra(d.delay)):
		return nil
	}
}
