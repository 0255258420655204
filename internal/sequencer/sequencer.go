// Package sequencer coordinates the timed reveal and reboot flows.
//
// A Sequencer owns the animation lock, the set of loaded sections, and a
// generation counter. Every flow start advances the generation; callbacks
// scheduled by a flow capture the generation they were scheduled under and
// do nothing once it is no longer current.
package sequencer

import (
	"log/slog"
	"sort"
	"time"

	"github.com/mmcdole/retrofolio/internal/clock"
	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/mmcdole/retrofolio/internal/typewriter"
)

// Status bar messages
const (
	statusCompiling = "> INITIATING COMPILATION FOR [%s]..."
	statusComplete  = "COMPILATION COMPLETE. SYSTEM ONLINE."
	StatusOnline    = "SYSTEM ONLINE"
	statusFailure   = "CRITICAL FAILURE // SYSTEM COLLAPSE"
)

// Timings holds every fixed delay in the flows
type Timings struct {
	LeadIn     time.Duration // Before the first build target reveals
	MorphDelay time.Duration // Reveal to morph, per target
	Settle     time.Duration // Typing done to modal close
	RebootLine time.Duration // Between reboot prompt lines
	ResetPause time.Duration // Between the two pairs of reset lines
	ResetFinal time.Duration // Collapse to reload
	AbortDelay time.Duration // Cancellation line to modal close
}

// DefaultTimings returns the stock delays
func DefaultTimings() Timings {
	return Timings{
		LeadIn:     500 * time.Millisecond,
		MorphDelay: 400 * time.Millisecond,
		Settle:     300 * time.Millisecond,
		RebootLine: 300 * time.Millisecond,
		ResetPause: 800 * time.Millisecond,
		ResetFinal: 2400 * time.Millisecond,
		AbortDelay: 1000 * time.Millisecond,
	}
}

// Surfaces are the collaborators the sequencer drives
type Surfaces struct {
	Modal    domain.Modal
	Document domain.Document
	Status   domain.StatusDisplay
	Visual   *domain.VisualBus // Optional; a private bus is created when nil
	Feedback domain.Feedback   // Optional
	Reloader domain.Reloader   // Optional
}

// Option configures a Sequencer
type Option func(*Sequencer)

// WithTimings overrides the stock delays
func WithTimings(t Timings) Option {
	return func(s *Sequencer) { s.timings = t }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIdleHook is called every time a flow releases the animation lock
func WithIdleHook(fn func()) Option {
	return func(s *Sequencer) { s.onIdle = fn }
}

// Sequencer is the single owner of reveal state
type Sequencer struct {
	registry domain.Registry
	sched    clock.Scheduler
	typer    *typewriter.Engine
	modal    domain.Modal
	doc      domain.Document
	status   domain.StatusDisplay
	visual   *domain.VisualBus
	feedback domain.Feedback
	reloader domain.Reloader
	timings  Timings
	logger   *slog.Logger
	onIdle   func()

	loaded     map[string]struct{}
	animating  bool
	active     string
	generation uint64
	reveals    uint64 // Reveal flows started; gates progress reports
	progress   int
	reboot     RebootState
}

// New creates a sequencer over the registry, scheduler and typewriter
func New(
	registry domain.Registry,
	sched clock.Scheduler,
	typer *typewriter.Engine,
	surfaces Surfaces,
	opts ...Option,
) *Sequencer {
	s := &Sequencer{
		registry: registry,
		sched:    sched,
		typer:    typer,
		modal:    surfaces.Modal,
		doc:      surfaces.Document,
		status:   surfaces.Status,
		visual:   surfaces.Visual,
		feedback: surfaces.Feedback,
		reloader: surfaces.Reloader,
		timings:  DefaultTimings(),
		logger:   slog.Default(),
		loaded:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.visual == nil {
		s.visual = domain.NewVisualBus()
	}
	if s.feedback == nil {
		s.feedback = domain.NoOpFeedback{}
	}
	if s.reloader == nil {
		s.reloader = domain.ReloaderFunc(func() {})
	}
	return s
}

// State is a snapshot of the sequencer's bookkeeping
type State struct {
	Loaded     []string // Sorted; membership is what matters
	Animating  bool
	Active     string
	Generation uint64
	Progress   int
	Reboot     RebootState
}

// State returns a snapshot
func (s *Sequencer) State() State {
	loaded := make([]string, 0, len(s.loaded))
	for id := range s.loaded {
		loaded = append(loaded, id)
	}
	sort.Strings(loaded)

	return State{
		Loaded:     loaded,
		Animating:  s.animating,
		Active:     s.active,
		Generation: s.generation,
		Progress:   s.progress,
		Reboot:     s.reboot,
	}
}

// Animating reports whether a flow holds the animation lock
func (s *Sequencer) Animating() bool { return s.animating }

// IsLoaded reports whether a section has been materialized
func (s *Sequencer) IsLoaded(id string) bool {
	_, ok := s.loaded[id]
	return ok
}

// Active returns the highlighted navigation entry
func (s *Sequencer) Active() string { return s.active }

// SetActive records the highlighted navigation entry
func (s *Sequencer) SetActive(id string) { s.active = id }

// Visual returns the bus decorative collaborators subscribe to
func (s *Sequencer) Visual() *domain.VisualBus { return s.visual }

// begin takes the animation lock and starts a new generation
func (s *Sequencer) begin() token {
	s.animating = true
	s.generation++
	return token{s: s, gen: s.generation}
}

// release drops the animation lock and reports idle
func (s *Sequencer) release(message string) {
	s.modal.Close()
	s.animating = false
	s.status.SetStatus(message, domain.StatusNormal)
	if s.onIdle != nil {
		s.onIdle()
	}
}

func (s *Sequencer) setProgress(percent int) {
	s.progress = percent
	s.status.SetProgress(percent)
}

// token ties scheduled work to the generation it was scheduled under
type token struct {
	s   *Sequencer
	gen uint64
}

func (t token) Valid() bool { return t.s.generation == t.gen }
