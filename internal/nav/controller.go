// Package nav maps nav bar interaction onto section reveals.
package nav

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/mmcdole/retrofolio/internal/sequencer"
)

const hintFormat = "TARGET: [%s_MODULE] // READY TO COMPILE"

// revealer is the slice of the sequencer the controller drives
type revealer interface {
	Reveal(id string) (sequencer.Outcome, error)
	Animating() bool
	SetActive(id string)
}

// Entry is one nav bar item
type Entry struct {
	ID      string
	Label   string
	Visited bool // Sticky once clicked
	Active  bool // At most one entry is active
}

// Controller tracks visited/active state and a cursor for keyboard hover
type Controller struct {
	entries []Entry
	index   map[string]int
	cursor  int
	seq     revealer
	status  domain.StatusDisplay
	logger  *slog.Logger
}

// New creates a controller with one entry per registry section, in order
func New(registry domain.Registry, seq revealer, status domain.StatusDisplay, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		index:  make(map[string]int),
		seq:    seq,
		status: status,
		logger: logger,
	}
	for _, id := range registry.IDs() {
		section, _ := registry.Get(id)
		c.index[id] = len(c.entries)
		c.entries = append(c.entries, Entry{ID: id, Label: section.DisplayLabel()})
	}
	return c
}

// Start reveals the first section and marks it visited
func (c *Controller) Start() (sequencer.Outcome, error) {
	if len(c.entries) == 0 {
		return sequencer.OutcomeIgnored, nil
	}
	return c.Click(c.entries[0].ID)
}

// Click marks the entry visited and active, then reveals its section and
// returns what the reveal did. Clicks during an animation are dropped before
// any state changes.
func (c *Controller) Click(id string) (sequencer.Outcome, error) {
	i, ok := c.index[id]
	if !ok {
		return sequencer.OutcomeIgnored, fmt.Errorf("%w: %q", domain.ErrSectionNotFound, id)
	}
	if c.seq.Animating() {
		return sequencer.OutcomeIgnored, domain.ErrAnimating
	}

	c.entries[i].Visited = true
	for j := range c.entries {
		c.entries[j].Active = j == i
	}
	c.cursor = i
	c.seq.SetActive(id)

	outcome, err := c.seq.Reveal(id)
	c.logger.Debug("nav click", "section", id, "outcome", outcome.String())
	return outcome, err
}

// ClickIndex clicks the n-th entry (zero based)
func (c *Controller) ClickIndex(n int) (sequencer.Outcome, error) {
	if n < 0 || n >= len(c.entries) {
		return sequencer.OutcomeIgnored, fmt.Errorf("%w: index %d", domain.ErrSectionNotFound, n)
	}
	return c.Click(c.entries[n].ID)
}

// Hover shows a hint for entries not yet visited
func (c *Controller) Hover(id string) {
	i, ok := c.index[id]
	if !ok || c.entries[i].Visited {
		return
	}
	c.status.SetStatus(fmt.Sprintf(hintFormat, strings.ToUpper(id)), domain.StatusNormal)
}

// Leave restores the idle status unless an animation owns the status bar
func (c *Controller) Leave(id string) {
	if _, ok := c.index[id]; !ok {
		return
	}
	if !c.seq.Animating() {
		c.status.SetStatus(sequencer.StatusOnline, domain.StatusNormal)
	}
}

// Move shifts the hover cursor by delta, wrapping around
func (c *Controller) Move(delta int) {
	if len(c.entries) == 0 {
		return
	}
	c.Leave(c.entries[c.cursor].ID)
	c.cursor = ((c.cursor+delta)%len(c.entries) + len(c.entries)) % len(c.entries)
	c.Hover(c.entries[c.cursor].ID)
}

// Select clicks the entry under the cursor
func (c *Controller) Select() (sequencer.Outcome, error) {
	if len(c.entries) == 0 {
		return sequencer.OutcomeIgnored, nil
	}
	return c.Click(c.entries[c.cursor].ID)
}

// Cursor returns the hovered entry index
func (c *Controller) Cursor() int { return c.cursor }

// Entries returns a copy of the nav entries
func (c *Controller) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Visited reports whether an entry has been clicked
func (c *Controller) Visited(id string) bool {
	i, ok := c.index[id]
	return ok && c.entries[i].Visited
}

// Active returns the active entry id, or "" when none is active
func (c *Controller) Active() string {
	for _, e := range c.entries {
		if e.Active {
			return e.ID
		}
	}
	return ""
}
