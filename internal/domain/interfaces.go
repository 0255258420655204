package domain

// Registry is read-only, synchronous access to the section content.
type Registry interface {
	Get(id string) (Section, bool)
	IDs() []string
	Len() int
}

// TextSink receives typed text.
// Implemented by the modal; the typewriter writes into it.
type TextSink interface {
	AppendText(s string)
	ScrollToBottom()
}

// Modal is the editor window that hosts the typewriter
type Modal interface {
	TextSink

	// Open shows the modal titled with filename and clears its text
	Open(filename string)
	// Close hides the modal
	Close()
	// ShowOptions toggles the on-screen YES/NO button pair
	ShowOptions(visible bool)
}

// BuildTarget is a handle to one top-level element of a materialized section
type BuildTarget interface {
	SetStatus(status BuildStatus)
}

// Document is the rendering surface sections are materialized into
type Document interface {
	// Insert materializes a section hidden and returns handles to its
	// buildable top-level elements in document order.
	Insert(section Section) []BuildTarget
	// ScrollTo brings a materialized section into view
	ScrollTo(id string, smooth bool)
}

// StatusDisplay shows status text and the 0-100 progress percentage
type StatusDisplay interface {
	SetStatus(message string, kind StatusKind)
	SetProgress(percent int)
}

// Feedback is the best-effort sound collaborator.
// Implementations must never block or fail the caller.
type Feedback interface {
	OnCharacterTyped(r rune)
	OnActionConfirmed()
	OnErrorTriggered()
}

// Reloader performs a full application reload; it does not return control
// to the flow that requested it.
type Reloader interface {
	Reload()
}

// NoOpFeedback discards all sound cues (for testing/muted operation).
type NoOpFeedback struct{}

func (NoOpFeedback) OnCharacterTyped(rune) {}
func (NoOpFeedback) OnActionConfirmed()    {}
func (NoOpFeedback) OnErrorTriggered()     {}

// ReloaderFunc adapts a function to Reloader
type ReloaderFunc func()

func (f ReloaderFunc) Reload() { f() }
