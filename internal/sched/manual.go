package sched

import (
	"sync"
	"time"
)

// ManualTimer is a Timer driven by tests: nothing fires until Fire is
// called explicitly.
type ManualTimer struct {
	mu    sync.Mutex
	fn    func()
	armed bool
	arms  int
}

func NewManualTimer() *ManualTimer { return &ManualTimer{} }

func (m *ManualTimer) Arm(_ time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	m.armed = true
	m.arms++
}

func (m *ManualTimer) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = nil
	m.armed = false
}

// Fire runs the armed callback, if any, and disarms.
func (m *ManualTimer) Fire() {
	m.mu.Lock()
	fn := m.fn
	m.fn = nil
	m.armed = false
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Armed reports whether a callback is pending.
func (m *ManualTimer) Armed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.armed
}

// Arms returns how many times Arm has been called.
func (m *ManualTimer) Arms() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.arms
}

// ManualClock is a Clock whose time only moves via Advance.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock { return &ManualClock{now: start} }

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
