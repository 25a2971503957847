// Package pace throttles outbound provider calls to stay inside
// upstream request quotas.
package pace

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// IntervalPacer enforces a minimum gap between consecutive calls,
// derived from a requests-per-minute quota. It is safe for concurrent
// use; callers queue behind a shared mutex so call order is preserved.
type IntervalPacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewIntervalPacer builds a pacer for the given quota. A quota of zero
// or less is rejected; use NoopPacer when throttling is not wanted.
func NewIntervalPacer(requestsPerMinute int) (*IntervalPacer, error) {
	if requestsPerMinute <= 0 {
		return nil, fmt.Errorf("interval pacer: requests per minute must be positive, got %d", requestsPerMinute)
	}

	return &IntervalPacer{
		interval: time.Minute / time.Duration(requestsPerMinute),
		now:      time.Now,
		sleep:    sleepContext,
	}, nil
}

// Wait blocks until the next call is allowed or the context is done.
func (p *IntervalPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if !p.last.IsZero() {
		if wait := p.interval - now.Sub(p.last); wait > 0 {
			if err := p.sleep(ctx, wait); err != nil {
				return err
			}
			now = p.now()
		}
	}
	p.last = now

	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoopPacer never waits.
type NoopPacer struct{}

func (NoopPacer) Wait(context.Context) error { return nil }
