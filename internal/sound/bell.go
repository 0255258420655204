// Package sound emits terminal bell cues for typing, confirmations and errors.
package sound

import (
	"io"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/mmcdole/retrofolio/internal/domain"
)

const (
	DefaultMaxPerSecond = 8

	cueBell = "\a"
	// Confirm and error cues ring more than once so they stand out from typing
	confirmRings = 2
	errorRings   = 3
)

// Bell implements domain.Feedback on an io.Writer (normally the terminal).
// Every cue is best effort: write errors are logged and dropped.
type Bell struct {
	mu      sync.Mutex
	w       io.Writer
	limiter *rate.Limiter
	muted   bool
	store   domain.PreferenceStore
	logger  *slog.Logger
}

var _ domain.Feedback = (*Bell)(nil)

// Option configures a Bell
type Option func(*Bell)

// WithMaxPerSecond caps typing cues; confirm and error cues are never limited
func WithMaxPerSecond(n int) Option {
	return func(b *Bell) {
		if n > 0 {
			b.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithStore persists the mute flag and restores it on creation
func WithStore(store domain.PreferenceStore) Option {
	return func(b *Bell) { b.store = store }
}

// WithLogger sets the logger for dropped writes
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bell) { b.logger = logger }
}

// WithMuted sets the initial mute state
func WithMuted(muted bool) Option {
	return func(b *Bell) { b.muted = muted }
}

// New creates a bell writing to w
func New(w io.Writer, opts ...Option) *Bell {
	b := &Bell{
		w:       w,
		limiter: rate.NewLimiter(rate.Limit(DefaultMaxPerSecond), 1),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.store != nil {
		if muted, ok := b.store.GetBool(domain.PrefMuted); ok {
			b.muted = muted
		}
	}
	return b
}

func (b *Bell) OnCharacterTyped(r rune) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted || !b.limiter.Allow() {
		return
	}
	b.ring(1)
}

func (b *Bell) OnActionConfirmed() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.muted {
		b.ring(confirmRings)
	}
}

func (b *Bell) OnErrorTriggered() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.muted {
		b.ring(errorRings)
	}
}

// must hold mu
func (b *Bell) ring(n int) {
	for i := 0; i < n; i++ {
		if _, err := io.WriteString(b.w, cueBell); err != nil {
			b.logger.Debug("bell write failed", "error", err)
			return
		}
	}
}

// Muted reports the mute state
func (b *Bell) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// ToggleMute flips the mute state and persists it when a store is set
func (b *Bell) ToggleMute() bool {
	b.mu.Lock()
	b.muted = !b.muted
	muted := b.muted
	b.mu.Unlock()

	if b.store != nil {
		if err := b.store.SetBool(domain.PrefMuted, muted); err != nil {
			b.logger.Warn("failed to persist mute flag", "error", err)
		}
	}
	return muted
}
