package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/mmcdole/retrofolio/internal/tui/styles"
)

// BarWidth is the number of cells inside the progress brackets
const BarWidth = 20

// StatusBar implements domain.StatusDisplay for the footer line
type StatusBar struct {
	message string
	kind    domain.StatusKind
	percent int
	muted   bool
	width   int
}

var _ domain.StatusDisplay = (*StatusBar)(nil)

// NewStatusBar creates a status bar showing msg
func NewStatusBar(msg string) *StatusBar {
	return &StatusBar{message: msg}
}

func (s *StatusBar) SetStatus(message string, kind domain.StatusKind) {
	s.message = message
	s.kind = kind
}

func (s *StatusBar) SetProgress(percent int) {
	s.percent = min(max(percent, 0), 100)
}

// SetMuted shows the mute indicator
func (s *StatusBar) SetMuted(muted bool) { s.muted = muted }

// SetWidth sets the render width
func (s *StatusBar) SetWidth(w int) { s.width = w }

// Message returns the current status text
func (s *StatusBar) Message() string { return s.message }

// Kind returns the current status kind
func (s *StatusBar) Kind() domain.StatusKind { return s.kind }

// Percent returns the last painted progress
func (s *StatusBar) Percent() int { return s.percent }

// ProgressBar renders the bracketed bar, e.g. [||||................]
func ProgressBar(percent int) string {
	filled := percent * BarWidth / 100
	filled = min(max(filled, 0), BarWidth)
	return "[" + strings.Repeat("|", filled) + strings.Repeat(".", BarWidth-filled) + "]"
}

// View renders the status line
func (s *StatusBar) View() string {
	color := styles.StatusColor(s.kind == domain.StatusBusy, s.kind == domain.StatusError)
	indicator := lipgloss.NewStyle().Foreground(color).Render("●")
	text := lipgloss.NewStyle().Foreground(color).Render(s.message)

	left := indicator + " " + text
	right := styles.AccentStyle.Render(ProgressBar(s.percent)) +
		styles.DimStyle.Render(fmt.Sprintf(" %3d%%", s.percent))
	if s.muted {
		right = styles.DimStyle.Render("[MUTED] ") + right
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
