package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/retrofolio/internal/domain"
)

// ChannelObserver adapts domain.VisualObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch     chan<- domain.VisualState
	closed bool
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.VisualState) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnVisualState sends the state to the channel (non-blocking if full).
// Receivers re-read the bus, so a dropped state is never lost.
func (o *ChannelObserver) OnVisualState(state domain.VisualState) {
	if o.closed {
		return
	}
	select {
	case o.ch <- state:
	default: // Non-blocking if channel full
	}
}

// Close closes the channel; later states are dropped
func (o *ChannelObserver) Close() {
	if !o.closed {
		o.closed = true
		close(o.ch)
	}
}

// waitVisualCmd blocks until the next visual change.
// A closed channel ends the wait without a message.
func waitVisualCmd(ch <-chan domain.VisualState, epoch uint64) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return VisualMsg{epoch: epoch}
	}
}
