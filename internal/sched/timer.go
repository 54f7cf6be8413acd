// Package sched holds the cancellable timer and clock primitives shared by
// the debounce and prefetch paths. Cancellation lives behind an explicit
// handle rather than ad-hoc closures so tests can drive time by hand.
package sched

import (
	"sync"
	"time"
)

// Timer is a single-shot re-armable timer. Arm cancels any previous
// schedule; only the last Arm before firing ever runs its callback.
type Timer interface {
	Arm(d time.Duration, fn func())
	Cancel()
}

// Clock supplies the current time. The cache uses it for staleness and
// retention decisions.
type Clock interface {
	Now() time.Time
}

// --- real implementations ---

type realTimer struct {
	mu sync.Mutex
	t  *time.Timer
}

func NewTimer() Timer { return &realTimer{} }

func (r *realTimer) Arm(d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.t != nil {
		r.t.Stop()
	}
	r.t = time.AfterFunc(d, fn)
}

func (r *realTimer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.t != nil {
		r.t.Stop()
		r.t = nil
	}
}

type realClock struct{}

func NewClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }
