package app

import (
	"context"
	"time"

	"github.com/five82/folio/internal/state"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// StartRetrier launches a background goroutine that rewrites the store's
// state while storage writes keep failing. Waits back off exponentially with
// the failure count. It returns immediately.
func StartRetrier(ctx context.Context, store *state.Store, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	go func() {
		for {
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			store.RetryPersist()
		}
	}()
}

// calculateBackoff doubles base for every failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
