// Package searchbuf keeps the user's literal keystrokes apart from the
// committed search filter. The live value belongs to the input widget:
// only keystrokes and explicit clears may change it, never a network
// response or an address change the user did not cause.
package searchbuf

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/contract-explorer/internal/sched"
)

// Phase of the debounce state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseCommitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// State is the snapshot handed to the render layer.
type State struct {
	Live      string
	Committed string
	Pending   bool
}

// Buffer debounces keystrokes into commits. A commit calls the supplied
// callback with the value to flush; the caller writes it to the URL store.
type Buffer struct {
	mu     sync.Mutex
	live   string
	commit string
	phase  Phase

	window time.Duration
	minLen int
	timer  sched.Timer
	flush  func(value string)
	logger *zap.Logger
}

func New(window time.Duration, minLen int, timer sched.Timer, flush func(string), logger *zap.Logger) *Buffer {
	return &Buffer{
		window: window,
		minLen: minLen,
		timer:  timer,
		flush:  flush,
		logger: logger,
	}
}

// Keystroke records the input's new full value and re-arms the debounce
// timer, canceling any previous schedule. Only the last keystroke in a
// burst survives to commit.
func (b *Buffer) Keystroke(value string) {
	b.mu.Lock()
	b.live = value
	b.phase = PhasePending
	b.mu.Unlock()
	b.timer.Arm(b.window, b.onTimer)
}

// Clear empties the buffer immediately, bypassing the timer, and commits
// the empty search at once if a committed value existed. Used by "clear
// all filters" style actions.
func (b *Buffer) Clear() {
	b.timer.Cancel()
	b.mu.Lock()
	hadCommit := b.commit != ""
	b.live = ""
	b.commit = ""
	b.phase = PhaseIdle
	b.mu.Unlock()
	if hadCommit {
		b.logger.Debug("search cleared")
		b.flush("")
	}
}

// Hydrate seeds both values from the address on initial mount or deep link.
func (b *Buffer) Hydrate(value string) {
	b.mu.Lock()
	b.live = value
	b.commit = value
	b.phase = PhaseIdle
	b.mu.Unlock()
}

// SyncCommitted mirrors an external address change (back/forward
// navigation) into the committed value. The live value is left alone.
func (b *Buffer) SyncCommitted(value string) {
	b.mu.Lock()
	b.commit = value
	b.mu.Unlock()
}

func (b *Buffer) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{Live: b.live, Committed: b.commit, Pending: b.phase == PhasePending}
}

func (b *Buffer) onTimer() {
	b.mu.Lock()
	if b.phase != PhasePending {
		b.mu.Unlock()
		return
	}
	value := b.live
	// Type-then-undo: the burst ended where it started, so there is
	// nothing to flush and no history write to make.
	if value == b.commit {
		b.phase = PhaseIdle
		b.mu.Unlock()
		return
	}
	// Short queries are held locally: no commit, no network noise. The
	// buffer stays pending until the user types more or clears.
	if n := len(value); n != 0 && n < b.minLen {
		b.mu.Unlock()
		b.logger.Debug("search below min length, held", zap.Int("len", len(value)))
		return
	}
	b.phase = PhaseCommitting
	b.mu.Unlock()

	b.logger.Debug("search committed", zap.String("value", value))
	b.flush(value)

	b.mu.Lock()
	if b.phase == PhaseCommitting {
		b.commit = value
		b.phase = PhaseIdle
	}
	b.mu.Unlock()
}
