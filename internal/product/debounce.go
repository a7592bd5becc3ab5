package product

import (
	"sync"
	"time"
)

// Debounce windows for the two interactive triggers: free-text search
// settles faster than a date-range pick.
const (
	SearchDebounce = 300 * time.Millisecond
	RangeDebounce  = 500 * time.Millisecond
)

// Debouncer collapses bursts of triggers into a single call after the
// window elapses with no further trigger. Safe for concurrent use.
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	fn    func()
	timer *time.Timer
}

// NewDebouncer creates a debouncer that invokes fn once per settled burst.
func NewDebouncer(d time.Duration, fn func()) *Debouncer {
	return &Debouncer{d: d, fn: fn}
}

// Trigger (re)starts the debounce window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.d, d.fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
