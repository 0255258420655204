package tui

// Message types for the TUI

// ErrMsg represents an error from a background command
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// timerMsg carries a scheduled callback back into Update.
// epoch ties it to the model generation that scheduled it.
type timerMsg struct {
	epoch uint64
	fn    func()
}

// FrameMsg advances the circuit animation
type FrameMsg struct {
	epoch uint64
}

// VisualMsg signals a VisualBus change
type VisualMsg struct {
	epoch uint64
}

// SavedMsg signals a preference write finished
type SavedMsg struct {
	Key string
}
