package content

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// BlockKind classifies a top-level markup element
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindList      BlockKind = "list"
	KindCode      BlockKind = "code"
	KindQuote     BlockKind = "quote"
	KindRule      BlockKind = "rule"
	KindTable     BlockKind = "table"
	KindHTML      BlockKind = "html"
)

// Block is one buildable top-level element of a section's markup.
type Block struct {
	Kind  BlockKind
	Level int      // Heading level (1-6), 0 otherwise
	Raw   string   // Markdown source of the block, shown while uncompiled
	Text  string   // Plain text content
	Items []string // List items or table rows
	Links []Link
}

// NavScheme prefixes link destinations that point at another section
const NavScheme = "nav:"

// Link is an inline link inside a block
type Link struct {
	Label string
	URL   string
}

// NavTarget returns the section id for nav: links
func (l Link) NavTarget() (string, bool) {
	if !strings.HasPrefix(l.URL, NavScheme) {
		return "", false
	}
	id := strings.TrimPrefix(l.URL, NavScheme)
	return id, id != ""
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ParseBlocks splits markup into its top-level blocks in document order.
// Empty markup yields no blocks.
func ParseBlocks(markup string) []Block {
	src := []byte(markup)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var blocks []Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = append(blocks, blockFromNode(n, src))
	}
	return blocks
}

// RenderHTML converts markup to an HTML fragment
func RenderHTML(markup string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(markup), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func blockFromNode(n ast.Node, src []byte) Block {
	b := Block{Raw: rawSource(n, src), Links: linksOf(n, src)}

	switch node := n.(type) {
	case *ast.Heading:
		b.Kind = KindHeading
		b.Level = node.Level
		b.Text = inlineText(node, src)

	case *ast.List:
		b.Kind = KindList
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			b.Items = append(b.Items, textOf(item, src))
		}
		b.Text = strings.Join(b.Items, "\n")

	case *ast.FencedCodeBlock:
		b.Kind = KindCode
		b.Text = linesText(node, src)
		b.Raw = "```" + string(node.Language(src)) + "\n" + b.Text + "\n```"

	case *ast.CodeBlock:
		b.Kind = KindCode
		b.Text = linesText(node, src)

	case *ast.Blockquote:
		b.Kind = KindQuote
		b.Text = containerText(node, src)

	case *ast.ThematicBreak:
		b.Kind = KindRule
		if b.Raw == "" {
			b.Raw = "---"
		}

	case *ast.HTMLBlock:
		b.Kind = KindHTML
		b.Text = linesText(node, src)

	case *east.Table:
		b.Kind = KindTable
		for row := node.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, inlineText(cell, src))
			}
			b.Items = append(b.Items, strings.Join(cells, " | "))
		}
		b.Text = strings.Join(b.Items, "\n")

	default:
		b.Kind = KindParagraph
		b.Text = textOf(n, src)
	}

	return b
}

// textOf extracts plain text from a block, recursing into nested blocks
func textOf(n ast.Node, src []byte) string {
	switch n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		return linesText(n, src)
	}
	if first := n.FirstChild(); first != nil && first.Type() == ast.TypeBlock {
		return containerText(n, src)
	}
	return inlineText(n, src)
}

// containerText joins the text of a container's child blocks line by line
func containerText(n ast.Node, src []byte) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if list, ok := c.(*ast.List); ok {
			for item := list.FirstChild(); item != nil; item = item.NextSibling() {
				parts = append(parts, "- "+textOf(item, src))
			}
			continue
		}
		parts = append(parts, textOf(c, src))
	}
	return strings.Join(parts, "\n")
}

// inlineText concatenates the inline text under n
func inlineText(n ast.Node, src []byte) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(src))
			if node.HardLineBreak() {
				buf.WriteByte('\n')
			} else if node.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.Label(src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// linksOf collects inline links in document order
func linksOf(n ast.Node, src []byte) []Link {
	var links []Link
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *ast.Link:
			links = append(links, Link{Label: inlineText(node, src), URL: string(node.Destination)})
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			links = append(links, Link{Label: string(node.Label(src)), URL: string(node.URL(src))})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return links
}

// linesText returns the raw lines of a leaf block without the trailing newline
func linesText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// rawSource returns the full source lines spanned by n
func rawSource(n ast.Node, src []byte) string {
	start, stop := -1, -1
	extend := func(s, e int) {
		if start < 0 || s < start {
			start = s
		}
		if e > stop {
			stop = e
		}
	}

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if c.Type() == ast.TypeBlock {
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				extend(seg.Start, seg.Stop)
			}
		}
		if t, ok := c.(*ast.Text); ok {
			extend(t.Segment.Start, t.Segment.Stop)
		}
		return ast.WalkContinue, nil
	})

	if start < 0 {
		return ""
	}

	// Widen to whole lines so list markers and heading hashes are included
	start = bytes.LastIndexByte(src[:start], '\n') + 1
	if stop < len(src) && (stop == 0 || src[stop-1] != '\n') {
		if idx := bytes.IndexByte(src[stop:], '\n'); idx >= 0 {
			stop += idx
		} else {
			stop = len(src)
		}
	}

	return strings.TrimRight(string(src[start:stop]), "\n")
}
