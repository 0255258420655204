package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/mmcdole/retrofolio/internal/tui/styles"
)

// BootLines is the power-on self test shown before the first reveal
var BootLines = []string{
	"RETROFOLIO BIOS v1.0  (C) 1987-2026",
	"MEMORY CHECK ........ 640K OK",
	"DETECTING DRIVES .... /dev/portfolio",
	"LOADING KERNEL MODULES [typewriter] [sequencer] [circuit]",
	"MOUNTING SECTIONS ... OK",
	"",
	"BOOT SEQUENCE COMPLETE. PRESS ANY KEY.",
}

// Boot is the boot screen. It implements domain.TextSink so the
// typewriter can print the self test into it.
type Boot struct {
	text    strings.Builder
	done    bool
	expired bool
	skipped bool
}

var _ domain.TextSink = (*Boot)(nil)

// NewBoot creates an empty boot screen
func NewBoot() *Boot { return &Boot{} }

func (b *Boot) AppendText(s string) { b.text.WriteString(s) }
func (b *Boot) ScrollToBottom()     {}

// Finish marks the self test printed
func (b *Boot) Finish() { b.done = true }

// Expire marks the hold after the self test as over
func (b *Boot) Expire() { b.expired = true }

// Expired reports whether the boot screen should hand over on its own
func (b *Boot) Expired() bool { return b.expired && !b.skipped }

// Skip aborts printing; Valid turns false so the typewriter stops
func (b *Boot) Skip() { b.skipped = true }

// Valid implements typewriter.Token
func (b *Boot) Valid() bool { return !b.skipped }

// Done reports whether every line was printed
func (b *Boot) Done() bool { return b.done }

// Text returns what has been printed
func (b *Boot) Text() string { return b.text.String() }

// View renders the boot text centered in w x h
func (b *Boot) View(w, h int) string {
	body := styles.CodeStyle.Render(b.text.String() + "█")
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(body))
}
