package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/retrofolio/internal/content"
	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/mmcdole/retrofolio/internal/tui/styles"
)

type docSection struct {
	section domain.Section
	blocks  []content.Block
	status  []domain.BuildStatus
}

// Document is the scrolling page sections are materialized into.
// It implements domain.Document; each top-level markup block is a build target.
type Document struct {
	sections  []*docSection
	index     map[string]int
	offsets   []int // First line of each section in the rendered page
	linkFocus int   // Index into NavLinks, -1 when no link is focused
	viewport  viewport.Model
	width     int
}

var _ domain.Document = (*Document)(nil)

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		index:     make(map[string]int),
		linkFocus: -1,
		viewport:  viewport.New(0, 0),
	}
}

type blockTarget struct {
	doc     *Document
	section int
	block   int
}

func (t blockTarget) SetStatus(status domain.BuildStatus) {
	t.doc.sections[t.section].status[t.block] = status
	t.doc.refresh()
}

func (d *Document) Insert(section domain.Section) []domain.BuildTarget {
	blocks := content.ParseBlocks(section.Markup)
	ds := &docSection{
		section: section,
		blocks:  blocks,
		status:  make([]domain.BuildStatus, len(blocks)),
	}

	i := len(d.sections)
	d.index[section.ID] = i
	d.sections = append(d.sections, ds)

	targets := make([]domain.BuildTarget, len(blocks))
	for b := range blocks {
		targets[b] = blockTarget{doc: d, section: i, block: b}
	}
	d.refresh()
	return targets
}

// ScrollTo puts the section header at the top of the view.
// Terminal scrolling is immediate, so smooth is ignored.
func (d *Document) ScrollTo(id string, smooth bool) {
	i, ok := d.index[id]
	if !ok || i >= len(d.offsets) {
		return
	}
	d.viewport.SetYOffset(d.offsets[i])
}

// Sections returns the ids in insertion order
func (d *Document) Sections() []string {
	ids := make([]string, len(d.sections))
	for i, s := range d.sections {
		ids[i] = s.section.ID
	}
	return ids
}

// Status returns the build status of one block
func (d *Document) Status(id string, block int) (domain.BuildStatus, bool) {
	i, ok := d.index[id]
	if !ok || block < 0 || block >= len(d.sections[i].status) {
		return domain.BuildPending, false
	}
	return d.sections[i].status[block], true
}

// SetSize resizes the view and re-renders
func (d *Document) SetSize(w, h int) {
	d.width = w
	d.viewport.Width = w
	d.viewport.Height = h
	d.refresh()
}

// Scroll moves the view by n lines (negative is up)
func (d *Document) Scroll(n int) {
	d.viewport.SetYOffset(d.viewport.YOffset + n)
}

// Page moves the view by n screens
func (d *Document) Page(n int) {
	d.Scroll(n * max(d.viewport.Height-1, 1))
}

// NavLinks returns the focusable nav buttons of compiled blocks in document order
func (d *Document) NavLinks() []content.Link {
	var links []content.Link
	for _, s := range d.sections {
		for b, block := range s.blocks {
			if s.status[b] == domain.BuildMorphed {
				links = append(links, buttonLinks(block)...)
			}
		}
	}
	return links
}

// buttonLinks returns the links of a list made only of nav links
func buttonLinks(b content.Block) []content.Link {
	if b.Kind != content.KindList || len(b.Links) == 0 || len(b.Links) != len(b.Items) {
		return nil
	}
	for _, l := range b.Links {
		if _, ok := l.NavTarget(); !ok {
			return nil
		}
	}
	return b.Links
}

// FocusNextLink cycles focus through NavLinks and returns the focused one
func (d *Document) FocusNextLink() (content.Link, bool) {
	links := d.NavLinks()
	if len(links) == 0 {
		d.linkFocus = -1
		return content.Link{}, false
	}
	d.linkFocus = (d.linkFocus + 1) % len(links)
	d.refresh()
	return links[d.linkFocus], true
}

// FocusedLink returns the focused nav link, if any
func (d *Document) FocusedLink() (content.Link, bool) {
	links := d.NavLinks()
	if d.linkFocus < 0 || d.linkFocus >= len(links) {
		return content.Link{}, false
	}
	return links[d.linkFocus], true
}

// ClearLinkFocus drops link focus
func (d *Document) ClearLinkFocus() {
	if d.linkFocus >= 0 {
		d.linkFocus = -1
		d.refresh()
	}
}

func (d *Document) refresh() {
	y := d.viewport.YOffset
	d.viewport.SetContent(d.render())
	d.viewport.SetYOffset(y)
}

func (d *Document) render() string {
	width := max(d.width, 20)
	var lines []string
	d.offsets = d.offsets[:0]
	link := 0

	for _, s := range d.sections {
		d.offsets = append(d.offsets, len(lines))
		lines = append(lines, sectionRule(s.section, width), "")

		for b, block := range s.blocks {
			var out string
			switch s.status[b] {
			case domain.BuildPending:
				out = strings.Repeat("\n", strings.Count(block.Raw, "\n"))
			case domain.BuildRevealed:
				out = styles.RawBlockStyle.Width(width).Render(block.Raw)
			case domain.BuildMorphed:
				out = d.renderBlock(block, width, &link)
			}
			lines = append(lines, strings.Split(out, "\n")...)
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

func sectionRule(s domain.Section, width int) string {
	label := "// " + s.DisplayLabel() + " "
	fill := max(width-lipgloss.Width(label)-2, 0)
	return styles.SectionRuleStyle.Render("──" + label + strings.Repeat("─", fill))
}

// renderBlock draws a compiled block; link counts nav links for focus
func (d *Document) renderBlock(b content.Block, width int, link *int) string {
	switch b.Kind {
	case content.KindHeading:
		if b.Level == 1 {
			return styles.HeadingStyle.Render(strings.ToUpper(b.Text))
		}
		return styles.SubheadingStyle.Render(b.Text)

	case content.KindList:
		if buttons := d.renderButtons(b, link); buttons != "" {
			return buttons
		}
		items := make([]string, len(b.Items))
		for i, item := range b.Items {
			items[i] = styles.AccentStyle.Render("▸ ") + styles.BodyStyle.Width(width-2).Render(item)
		}
		return strings.Join(items, "\n")

	case content.KindCode:
		return styles.CodeStyle.Render(b.Text)

	case content.KindQuote:
		return styles.QuoteStyle.Width(width - 2).Render(b.Text)

	case content.KindRule:
		return styles.SectionRuleStyle.Render(strings.Repeat("─", width))

	case content.KindTable:
		return styles.BodyStyle.Render(strings.Join(b.Items, "\n"))

	case content.KindHTML:
		return styles.DimStyle.Render(b.Text)

	default:
		return styles.BodyStyle.Width(width).Render(b.Text)
	}
}

// renderButtons draws a nav-only list as a button row
func (d *Document) renderButtons(b content.Block, link *int) string {
	links := buttonLinks(b)
	if links == nil {
		return ""
	}

	buttons := make([]string, len(links))
	for i, l := range links {
		style := styles.LinkStyle
		if *link == d.linkFocus {
			style = styles.LinkFocusStyle
		}
		*link++
		buttons[i] = style.Render(l.Label)
	}
	return strings.Join(buttons, "  ")
}

// View renders the visible part of the page
func (d *Document) View() string {
	return d.viewport.View()
}
