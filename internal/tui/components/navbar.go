package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/retrofolio/internal/nav"
	"github.com/mmcdole/retrofolio/internal/tui/styles"
)

const brand = "RETRO://FOLIO"

// Navbar renders the section links, the brand and the reboot control
type Navbar struct {
	width   int
	glitch  bool // Reboot control flickers once a reset is confirmed
	focused bool // Whether the hover cursor is shown
}

// NewNavbar creates a nav bar
func NewNavbar() Navbar { return Navbar{} }

// SetWidth sets the render width
func (n *Navbar) SetWidth(w int) { n.width = w }

// SetGlitch toggles the failing reboot look
func (n *Navbar) SetGlitch(on bool) { n.glitch = on }

// SetFocused toggles the hover cursor
func (n *Navbar) SetFocused(on bool) { n.focused = on }

// View renders entries, highlighting visited, active and hovered items
func (n Navbar) View(entries []nav.Entry, cursor int) string {
	items := make([]string, len(entries))
	for i, e := range entries {
		label := fmt.Sprintf("%d:%s", i+1, e.Label)
		style := styles.NavItemStyle
		switch {
		case e.Active:
			style = styles.NavActiveStyle
		case n.focused && i == cursor:
			style = styles.NavHoverStyle
		case e.Visited:
			style = styles.NavVisitedStyle
		}
		items[i] = style.Render(label)
	}

	left := styles.AccentStyle.Bold(true).Render(brand) + "  " + strings.Join(items, "")

	reboot := "[R]EBOOT"
	if n.glitch {
		reboot = "[R]E#00T"
	}
	right := styles.RebootStyle.Render(reboot)

	gap := max(n.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
