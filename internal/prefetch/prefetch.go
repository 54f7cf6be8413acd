// Package prefetch warms the query cache for a likely-next navigation
// target on hover. A pointer that leaves before the delay elapses cancels
// the timer and no request is ever issued; a fired prefetch goes through
// cache.Ensure and is indistinguishable from a normal fetch, so the
// cache's de-duplication keeps it from interrupting anything in flight.
package prefetch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/contract-explorer/internal/cache"
	"github.com/example/contract-explorer/internal/query"
	"github.com/example/contract-explorer/internal/sched"
)

type Scheduler struct {
	mu       sync.Mutex
	cache    *cache.Cache
	delay    time.Duration
	newTimer func() sched.Timer
	pending  map[query.Key]sched.Timer
	logger   *zap.Logger
}

func NewScheduler(c *cache.Cache, delay time.Duration, newTimer func() sched.Timer, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cache:    c,
		delay:    delay,
		newTimer: newTimer,
		pending:  make(map[query.Key]sched.Timer),
		logger:   logger,
	}
}

// Schedule arms a delayed cache warm-up for key. The returned cancel is
// idempotent; calling it after the timer fired is a no-op.
func (s *Scheduler) Schedule(ctx context.Context, key query.Key, fetch cache.Fetcher) (cancel func()) {
	s.mu.Lock()
	if t, ok := s.pending[key]; ok {
		// Re-hover on the same target: restart the delay.
		t.Cancel()
	}
	t := s.newTimer()
	s.pending[key] = t
	s.mu.Unlock()

	t.Arm(s.delay, func() {
		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
		s.logger.Debug("prefetch fired", zap.String("key", string(key)))
		s.cache.Ensure(ctx, key, fetch)
	})

	return func() {
		s.mu.Lock()
		cur, ok := s.pending[key]
		if ok && cur == t {
			delete(s.pending, key)
		}
		s.mu.Unlock()
		if ok && cur == t {
			t.Cancel()
			s.logger.Debug("prefetch canceled", zap.String("key", string(key)))
		}
	}
}

// Cancel drops a pending prefetch for key, if any.
func (s *Scheduler) Cancel(key query.Key) {
	s.mu.Lock()
	t, ok := s.pending[key]
	if ok {
		delete(s.pending, key)
	}
	s.mu.Unlock()
	if ok {
		t.Cancel()
	}
}

// PendingCount reports how many hover timers are armed.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
