// Package pacing holds the self-throttling used against the search API's
// rate policy. The governor is deliberately decoupled from the fetch logic
// so a concurrent-with-limiter scheme could replace it without touching the
// pipeline.
package pacing

import (
	"context"
	"time"
)

// Governor enforces a minimum spacing between successive calls. The first
// call passes immediately. Not safe for concurrent use; the pipeline is
// strictly sequential.
type Governor struct {
	interval time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	last     time.Time
}

func NewGovernor(interval time.Duration) *Governor {
	return &Governor{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until at least the configured interval has passed since the
// previous Wait returned, or until ctx is done.
func (g *Governor) Wait(ctx context.Context) error {
	if g.interval > 0 && !g.last.IsZero() {
		if remaining := g.interval - g.now().Sub(g.last); remaining > 0 {
			if err := g.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}
	g.last = g.now()
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
