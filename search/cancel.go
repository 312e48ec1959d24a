package search

import (
	"sync/atomic"
	"time"
)

// Canceller is a cancellation flag shared between a running search and
// whoever wants to stop it. Cancel may be called from any goroutine; the
// search polls the flag before every attempt. A nil *Canceller is never
// cancelled.
type Canceller struct {
	flag atomic.Bool
}

func (c *Canceller) Cancel() { c.flag.Store(true) }

func (c *Canceller) Cancelled() bool { return c != nil && c.flag.Load() }

// CancelAfter sets the flag once d has elapsed. The returned function stops
// the timer and reports whether it did so before it fired.
func (c *Canceller) CancelAfter(d time.Duration) (stop func() bool) {
	t := time.AfterFunc(d, c.Cancel)
	return t.Stop
}
