// Package linemode drives the reveal flow without a full-screen UI, writing
// the typed source and the compiled sections to plain streams.
package linemode

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/retrofolio/internal/content"
	"github.com/mmcdole/retrofolio/internal/domain"
)

// Console is the modal for line mode. Typed text is echoed to w when echo is on.
type Console struct {
	w     io.Writer
	echo  bool
	typed int
}

var _ domain.Modal = (*Console)(nil)

// NewConsole creates a console over w
func NewConsole(w io.Writer, echo bool) *Console {
	return &Console{w: w, echo: echo}
}

func (c *Console) Open(filename string) {
	if c.echo {
		fmt.Fprintf(c.w, "--- %s ---\n", filename)
	}
}

func (c *Console) Close() {
	if c.echo {
		fmt.Fprintln(c.w)
	}
}

func (c *Console) AppendText(s string) {
	c.typed += len([]rune(s))
	if c.echo {
		io.WriteString(c.w, s)
	}
}

func (c *Console) ScrollToBottom()  {}
func (c *Console) ShowOptions(bool) {}

// Typed returns how many characters were typed so far
func (c *Console) Typed() int { return c.typed }

// Page collects compiled blocks per section until they are flushed
type Page struct {
	order    []string
	sections map[string]*pageSection
}

type pageSection struct {
	section domain.Section
	blocks  []content.Block
	status  []domain.BuildStatus
	morphed int
	waiters []func()
}

func (ps *pageSection) compiled() bool { return ps.morphed == len(ps.blocks) }

type pageTarget struct {
	s     *pageSection
	block int
}

func (t pageTarget) SetStatus(status domain.BuildStatus) {
	ps := t.s
	if ps.status[t.block] == status {
		return
	}
	if ps.status[t.block] == domain.BuildMorphed {
		ps.morphed--
	}
	ps.status[t.block] = status
	if status != domain.BuildMorphed {
		return
	}
	ps.morphed++
	if ps.compiled() {
		waiters := ps.waiters
		ps.waiters = nil
		for _, fn := range waiters {
			fn()
		}
	}
}

var _ domain.Document = (*Page)(nil)

// NewPage creates an empty page
func NewPage() *Page {
	return &Page{sections: make(map[string]*pageSection)}
}

func (p *Page) Insert(section domain.Section) []domain.BuildTarget {
	blocks := content.ParseBlocks(section.Markup)
	ps := &pageSection{
		section: section,
		blocks:  blocks,
		status:  make([]domain.BuildStatus, len(blocks)),
	}
	p.order = append(p.order, section.ID)
	p.sections[section.ID] = ps

	targets := make([]domain.BuildTarget, len(blocks))
	for i := range blocks {
		targets[i] = pageTarget{s: ps, block: i}
	}
	return targets
}

func (p *Page) ScrollTo(string, bool) {}

// Sections returns the inserted ids in order
func (p *Page) Sections() []string { return append([]string(nil), p.order...) }

// WhenCompiled runs fn once every block of the section has morphed. It runs
// fn immediately when that is already true or the id was never inserted.
func (p *Page) WhenCompiled(id string, fn func()) {
	ps, ok := p.sections[id]
	if !ok || ps.compiled() {
		fn()
		return
	}
	ps.waiters = append(ps.waiters, fn)
}

// Render returns the compiled text of a section; blocks not yet morphed are left out
func (p *Page) Render(id string) string {
	ps, ok := p.sections[id]
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", ps.section.DisplayLabel())
	for i, block := range ps.blocks {
		if ps.status[i] != domain.BuildMorphed {
			continue
		}
		b.WriteString(renderBlock(block))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderBlock(block content.Block) string {
	switch block.Kind {
	case content.KindHeading:
		return strings.Repeat("#", max(block.Level, 1)) + " " + block.Text
	case content.KindList:
		items := make([]string, len(block.Items))
		for i, item := range block.Items {
			items[i] = "  * " + item
		}
		return strings.Join(items, "\n")
	case content.KindQuote:
		return "  > " + strings.ReplaceAll(block.Text, "\n", "\n  > ")
	case content.KindRule:
		return strings.Repeat("-", 40)
	default:
		return block.Text
	}
}
