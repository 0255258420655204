package domain

import "sync"

// VisualState is the global look the decorative background consumes.
type VisualState struct {
	Overload  bool // System collapse: red, fast traces
	Surge     bool // Short burst after an interactive action
	ErrorMode bool // Flicker styling of the whole screen
}

// VisualObserver receives visual state changes.
type VisualObserver interface {
	OnVisualState(state VisualState)
}

// VisualObserverFunc adapts a function to VisualObserver
type VisualObserverFunc func(VisualState)

func (f VisualObserverFunc) OnVisualState(s VisualState) { f(s) }

// VisualBus publishes VisualState to subscribers.
// It replaces DOM-level flags shared between the sequencer and the background.
type VisualBus struct {
	mu        sync.Mutex
	state     VisualState
	observers []VisualObserver
}

// NewVisualBus creates an empty bus
func NewVisualBus() *VisualBus {
	return &VisualBus{}
}

// Subscribe registers an observer and immediately delivers the current state
func (b *VisualBus) Subscribe(o VisualObserver) {
	b.mu.Lock()
	b.observers = append(b.observers, o)
	state := b.state
	b.mu.Unlock()
	o.OnVisualState(state)
}

// State returns the current state
func (b *VisualBus) State() VisualState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Update applies fn to the state and notifies observers if it changed
func (b *VisualBus) Update(fn func(*VisualState)) {
	b.mu.Lock()
	next := b.state
	fn(&next)
	if next == b.state {
		b.mu.Unlock()
		return
	}
	b.state = next
	observers := append([]VisualObserver(nil), b.observers...)
	b.mu.Unlock()

	for _, o := range observers {
		o.OnVisualState(next)
	}
}
