package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/retrofolio/internal/search"
	"github.com/mmcdole/retrofolio/internal/tui/styles"
)

const paletteWidth = 44

// Palette is the ":" jump-to-section prompt
type Palette struct {
	visible bool
	input   textinput.Model
	index   *search.Index
	results []search.Result
	cursor  int
	hint    string
}

// NewPalette creates a palette over idx
func NewPalette(idx *search.Index) Palette {
	ti := textinput.New()
	ti.Placeholder = "jump to section..."
	ti.CharLimit = 32
	ti.Width = paletteWidth - 4
	ti.Prompt = ": "
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Palette{input: ti, index: idx}
}

// Show opens the palette with every section listed
func (p *Palette) Show() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	p.hint = ""
	p.refresh()
	return p.input.Focus()
}

// Hide dismisses the palette
func (p *Palette) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the palette is shown
func (p Palette) IsVisible() bool { return p.visible }

// Results returns the current matches
func (p Palette) Results() []search.Result { return p.results }

// Hint returns the "did you mean" text, if any
func (p Palette) Hint() string { return p.hint }

func (p *Palette) refresh() {
	p.results = p.index.Find(p.input.Value())
	p.cursor = 0
	p.hint = ""
	if len(p.results) == 0 {
		if s := p.index.Suggest(p.input.Value()); s != "" {
			p.hint = "did you mean " + s + "?"
		}
	}
}

// Update handles input, returns (palette, cmd, chosen section id)
func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd, string) {
	if !p.visible {
		return p, nil, ""
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			p.Hide()
			return p, nil, ""
		case "enter":
			if len(p.results) == 0 {
				return p, nil, ""
			}
			id := p.results[p.cursor].Section.ID
			p.Hide()
			return p, nil, id
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, ""
		case "down", "ctrl+n", "tab":
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil, ""
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refresh()
	}
	return p, cmd, ""
}

// View renders the palette box
func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	rows := []string{p.input.View(), ""}
	for i, r := range p.results {
		line := highlight(r.Section.DisplayLabel()+"  "+r.Section.Filename, r)
		if i == p.cursor {
			line = styles.PaletteSelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	if p.hint != "" {
		rows = append(rows, styles.DimStyle.Render(p.hint))
	} else if len(p.results) == 0 {
		rows = append(rows, styles.DimStyle.Render("no match"))
	}

	return styles.PaletteStyle.Width(paletteWidth).Render(strings.Join(rows, "\n"))
}

// highlight marks runes of text that appear at matched key positions.
// The key is "id label filename"; only label and filename are displayed.
func highlight(text string, r search.Result) string {
	if len(r.MatchedIndexes) == 0 {
		return text
	}

	// Map matched key positions onto the displayed "label  filename"
	keyRunes := []rune(r.Key)
	offset := len([]rune(r.Section.ID)) + 1
	matched := make(map[int]bool)
	for _, i := range r.MatchedIndexes {
		if i < offset || i >= len(keyRunes) {
			continue
		}
		pos := i - offset
		if pos > len([]rune(r.Section.DisplayLabel())) {
			pos++ // Display uses two spaces between label and filename
		}
		matched[pos] = true
	}

	var sb strings.Builder
	for i, c := range []rune(text) {
		if matched[i] {
			sb.WriteString(styles.PaletteMatchStyle.Render(string(c)))
		} else {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}
