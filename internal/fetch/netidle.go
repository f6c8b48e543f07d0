// internal/fetch/netidle.go
package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// inflightTracker counts outstanding network requests on a browser context
// so capture can wait for quiescence: no requests in flight for a full quiet
// window.
type inflightTracker struct {
	mu           sync.Mutex
	inflight     map[network.RequestID]struct{}
	lastActivity time.Time
}

// newInflightTracker registers network event listeners on the given
// chromedp context. The listener lives as long as the context does.
func newInflightTracker(browserCtx context.Context) *inflightTracker {
	t := &inflightTracker{
		inflight:     make(map[network.RequestID]struct{}),
		lastActivity: time.Now(),
	}

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		switch ev := ev.(type) {
		case *network.EventRequestWillBeSent:
			t.mu.Lock()
			t.inflight[ev.RequestID] = struct{}{}
			t.lastActivity = time.Now()
			t.mu.Unlock()
		case *network.EventLoadingFinished:
			t.done(ev.RequestID)
		case *network.EventLoadingFailed:
			t.done(ev.RequestID)
		}
	})

	return t
}

func (t *inflightTracker) done(id network.RequestID) {
	t.mu.Lock()
	delete(t.inflight, id)
	t.lastActivity = time.Now()
	t.mu.Unlock()
}

// idleFor reports whether no request has been in flight for the quiet window.
func (t *inflightTracker) idleFor(window time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight) == 0 && time.Since(t.lastActivity) >= window
}

// WaitIdle blocks until the network has been quiet for the given window, the
// max wait elapses, or the context is cancelled. Exceeding the max wait is
// reported as an error so callers can log it, but pages that stream forever
// (analytics beacons, long-polling) should not block capture.
func (t *inflightTracker) WaitIdle(ctx context.Context, window, max time.Duration) error {
	deadline := time.Now().Add(max)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if t.idleFor(window) {
				return nil
			}
			if time.Now().After(deadline) {
				return fmt.Errorf("network still active after %s", max)
			}
		}
	}
}
