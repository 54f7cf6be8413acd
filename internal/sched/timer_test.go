package sched

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealTimerRearmCancelsPrevious(t *testing.T) {
	var first, second atomic.Int32
	timer := NewTimer()

	timer.Arm(10*time.Millisecond, func() { first.Add(1) })
	timer.Arm(10*time.Millisecond, func() { second.Add(1) })

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "re-arm replaces the earlier callback")
	assert.Equal(t, int32(1), second.Load())
}

func TestRealTimerCancel(t *testing.T) {
	var fired atomic.Int32
	timer := NewTimer()

	timer.Arm(10*time.Millisecond, func() { fired.Add(1) })
	timer.Cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestManualTimer(t *testing.T) {
	var fired int
	m := NewManualTimer()

	m.Fire() // nothing armed
	assert.Equal(t, 0, fired)

	m.Arm(time.Second, func() { fired++ })
	assert.True(t, m.Armed())
	m.Fire()
	assert.Equal(t, 1, fired)
	assert.False(t, m.Armed())

	m.Arm(time.Second, func() { fired++ })
	m.Cancel()
	m.Fire()
	assert.Equal(t, 1, fired)
	assert.Equal(t, 2, m.Arms())
}

func TestManualClock(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	c := NewManualClock(start)
	assert.Equal(t, start, c.Now())
	c.Advance(time.Hour)
	assert.Equal(t, start.Add(time.Hour), c.Now())
}
