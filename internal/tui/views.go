package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/retrofolio/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateBooting:
		return m.Boot.View(m.Width, m.Height)
	case StateHelp:
		return m.renderHelp()
	}

	// The line under the nav bar doubles as the error line
	notice := ""
	if m.lastErr != "" {
		notice = styles.ErrorStyle.Render(truncate("! "+m.lastErr, m.Width))
	}

	doc := m.Document.View()
	if m.flicker {
		doc = lipgloss.NewStyle().Faint(true).Render(doc)
	}

	parts := []string{
		m.Navbar.View(m.Nav.Entries(), m.Nav.Cursor()),
		notice,
		doc,
	}
	if m.opts.Circuit {
		parts = append(parts, m.Board.Render())
	}
	parts = append(parts, m.Status.View())

	view := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Overlay palette if visible
	if m.Palette.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Palette.View())
	}

	// The terminal modal wins over everything
	if m.Modal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Modal.View())
	}

	return view
}

// renderHelp renders the key reference
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("KEYS"))
	b.WriteString("\n\n")
	for _, binding := range helpBindings() {
		h := binding.Help()
		fmt.Fprintf(&b, "  %s %s\n",
			styles.HelpKeyStyle.Render(fmt.Sprintf("%-12s", h.Key)),
			styles.HelpDescStyle.Render(h.Desc))
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Press ? or Esc to return..."))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(b.String()))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
