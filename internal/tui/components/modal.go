package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/mmcdole/retrofolio/internal/tui/styles"
)

// Choice is the focused reboot button
type Choice int

const (
	ChoiceYes Choice = iota
	ChoiceNo
)

// Modal is the editor window the typewriter writes into.
// It implements domain.Modal.
type Modal struct {
	visible  bool
	filename string
	text     strings.Builder
	options  bool
	choice   Choice
	danger   bool // Red frame once the system is failing
	viewport viewport.Model
	width    int
	height   int
}

var _ domain.Modal = (*Modal)(nil)

// NewModal creates a hidden modal
func NewModal() *Modal {
	return &Modal{viewport: viewport.New(0, 0)}
}

func (m *Modal) Open(filename string) {
	m.visible = true
	m.filename = filename
	m.text.Reset()
	m.options = false
	m.danger = false
	m.viewport.SetContent("")
	m.viewport.GotoTop()
}

func (m *Modal) Close() {
	m.visible = false
	m.options = false
}

func (m *Modal) AppendText(s string) {
	m.text.WriteString(s)
	m.viewport.SetContent(m.wrap(m.text.String()))
}

func (m *Modal) ScrollToBottom() { m.viewport.GotoBottom() }

func (m *Modal) ShowOptions(visible bool) {
	m.options = visible
	if visible {
		m.choice = ChoiceNo
	}
}

// SetDanger switches the frame to the failure color
func (m *Modal) SetDanger(on bool) { m.danger = on }

// IsVisible returns whether the modal is shown
func (m *Modal) IsVisible() bool { return m.visible }

// OptionsVisible returns whether the YES/NO buttons are shown
func (m *Modal) OptionsVisible() bool { return m.options }

// Filename returns the title
func (m *Modal) Filename() string { return m.filename }

// Text returns everything typed since Open
func (m *Modal) Text() string { return m.text.String() }

// Choice returns the focused button
func (m *Modal) Choice() Choice { return m.choice }

// MoveChoice toggles button focus
func (m *Modal) MoveChoice() {
	if m.choice == ChoiceYes {
		m.choice = ChoiceNo
	} else {
		m.choice = ChoiceYes
	}
}

// SetSize fits the modal inside a w x h screen
func (m *Modal) SetSize(w, h int) {
	m.width = max(min(w-8, 80), 20)
	m.height = max(min(h-6, 20), 6)
	m.viewport.Width = m.width - 4
	m.viewport.Height = m.height - 4
	m.viewport.SetContent(m.wrap(m.text.String()))
	m.viewport.GotoBottom()
}

func (m *Modal) wrap(s string) string {
	if m.viewport.Width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(m.viewport.Width).Render(styles.CodeStyle.Render(s + "█"))
}

// View renders the modal window
func (m *Modal) View() string {
	if !m.visible {
		return ""
	}

	title := styles.ErrorStyle.Render("●") + " " +
		styles.BusyStyle.Render("●") + " " +
		styles.AccentStyle.Render("●") + "  " +
		styles.ModalTitleStyle.Render(m.filename)

	parts := []string{title, "", m.viewport.View()}
	if m.options {
		parts = append(parts, "", m.buttons())
	}

	frame := styles.ModalStyle
	if m.danger {
		frame = styles.ModalErrorStyle
	}
	return frame.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Modal) buttons() string {
	yes, no := styles.ButtonStyle, styles.ButtonStyle
	if m.choice == ChoiceYes {
		yes = styles.DangerFocusStyle
	} else {
		no = styles.ButtonFocusStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("YES"), "  ", no.Render("NO"))
}
