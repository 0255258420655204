// Package typewriter reveals text one character at a time on a scheduler.
package typewriter

import (
	"math/rand/v2"
	"time"
	"unicode"

	"github.com/mmcdole/retrofolio/internal/clock"
	"github.com/mmcdole/retrofolio/internal/domain"
)

// Default cadence
const (
	DefaultBaseSpeed = 10 * time.Millisecond
	DefaultJitterMax = 15 * time.Millisecond
)

// Token reports whether the run that started a stream is still current.
// Once a token turns invalid the stream stops without writing again.
type Token interface {
	Valid() bool
}

// Always is a token that never expires
type Always struct{}

func (Always) Valid() bool { return true }

// Engine types text into a sink with an irregular cadence
type Engine struct {
	sched     clock.Scheduler
	rng       *rand.Rand
	baseSpeed time.Duration
	jitterMax time.Duration

	// onCharacter is invoked after every non-whitespace character
	onCharacter func(r rune)
}

// Option configures an Engine
type Option func(*Engine)

// WithSpeed sets the base per-character delay and the maximum extra jitter
func WithSpeed(base, jitter time.Duration) Option {
	return func(e *Engine) {
		e.baseSpeed = max(base, 0)
		e.jitterMax = max(jitter, 0)
	}
}

// WithRand sets the jitter source (tests pass a seeded generator)
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithCharacterHook sets the per-character feedback cue
func WithCharacterHook(fn func(r rune)) Option {
	return func(e *Engine) { e.onCharacter = fn }
}

// New creates an engine on the given scheduler
func New(sched clock.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		sched:     sched,
		baseSpeed: DefaultBaseSpeed,
		jitterMax: DefaultJitterMax,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return e
}

// BaseSpeed returns the base per-character delay
func (e *Engine) BaseSpeed() time.Duration { return e.baseSpeed }

// Delay draws one inter-character delay in [base, base+jitter]
func (e *Engine) Delay() time.Duration {
	if e.jitterMax <= 0 {
		return e.baseSpeed
	}
	return e.baseSpeed + time.Duration(e.rng.Int64N(int64(e.jitterMax)+1))
}

// Type appends text to sink one character at a time. The first character is
// written immediately, each following one after a fresh Delay, and done fires
// one Delay after the last character. Empty text calls done synchronously.
func (e *Engine) Type(tok Token, sink domain.TextSink, text string, done func()) {
	runes := []rune(text)
	i := 0

	var step func()
	step = func() {
		if !tok.Valid() {
			return
		}
		if i >= len(runes) {
			if done != nil {
				done()
			}
			return
		}

		r := runes[i]
		i++
		sink.AppendText(string(r))
		sink.ScrollToBottom()
		if e.onCharacter != nil && !unicode.IsSpace(r) {
			e.onCharacter(r)
		}

		e.sched.After(e.Delay(), step)
	}
	step()
}

// Lines appends whole lines, newline-separated, pausing after each one.
// done fires one pause after the last line.
func (e *Engine) Lines(tok Token, sink domain.TextSink, lines []string, pause time.Duration, done func()) {
	i := 0

	var step func()
	step = func() {
		if !tok.Valid() {
			return
		}
		if i >= len(lines) {
			if done != nil {
				done()
			}
			return
		}

		line := lines[i]
		if i > 0 {
			line = "\n" + line
		}
		i++
		sink.AppendText(line)
		sink.ScrollToBottom()

		e.sched.After(pause, step)
	}
	step()
}
