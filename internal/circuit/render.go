package circuit

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	idleColor     = lipgloss.Color("#00F3FF")
	dimColor      = lipgloss.Color("#0B5563")
	surgeColor    = lipgloss.Color("#BC13FE")
	overloadColor = lipgloss.Color("#FF3333")
)

func glyph(c Cell) rune {
	switch {
	case c.Head:
		return '●'
	case c.Heat == 0:
		return ' '
	case c.Heat < 0.3:
		return '·'
	case c.Dir.vertical():
		return '│'
	default:
		return '─'
	}
}

// Render draws the board as colored text rows
func (b *Board) Render() string {
	state := b.bus.State()
	hot, cold := idleColor, dimColor
	switch {
	case state.Overload:
		hot, cold = overloadColor, overloadColor
	case state.Surge:
		hot, cold = surgeColor, surgeColor
	}
	hotStyle := lipgloss.NewStyle().Foreground(hot).Bold(state.Overload || state.Surge)
	coldStyle := lipgloss.NewStyle().Foreground(cold)

	rows := make([]string, len(b.cells))
	for y, row := range b.cells {
		var sb strings.Builder
		for _, c := range row {
			g := string(glyph(c))
			switch {
			case c.Heat == 0 && !c.Head:
				sb.WriteString(g)
			case c.Head || c.Heat >= 0.5:
				sb.WriteString(hotStyle.Render(g))
			default:
				sb.WriteString(coldStyle.Render(g))
			}
		}
		rows[y] = sb.String()
	}
	return strings.Join(rows, "\n")
}

// Plain draws the board without color, one rune per cell
func (b *Board) Plain() string {
	rows := make([]string, len(b.cells))
	for y, row := range b.cells {
		runes := make([]rune, len(row))
		for x, c := range row {
			runes[x] = glyph(c)
		}
		rows[y] = string(runes)
	}
	return strings.Join(rows, "\n")
}
