package sequencer

import (
	"strings"

	"github.com/mmcdole/retrofolio/internal/domain"
)

type fakeModal struct {
	visible  bool
	filename string
	text     strings.Builder
	options  bool
	opens    int
	closes   int
}

func (m *fakeModal) Open(filename string) {
	m.visible = true
	m.filename = filename
	m.text.Reset()
	m.opens++
}

func (m *fakeModal) Close() {
	m.visible = false
	m.closes++
}

func (m *fakeModal) AppendText(s string)      { m.text.WriteString(s) }
func (m *fakeModal) ScrollToBottom()          {}
func (m *fakeModal) ShowOptions(visible bool) { m.options = visible }

type fakeTarget struct {
	history []domain.BuildStatus
}

func (t *fakeTarget) SetStatus(s domain.BuildStatus) { t.history = append(t.history, s) }

func (t *fakeTarget) status() domain.BuildStatus {
	if len(t.history) == 0 {
		return domain.BuildPending
	}
	return t.history[len(t.history)-1]
}

type fakeDocument struct {
	counts  map[string]int // build targets per section id
	targets map[string][]*fakeTarget
	inserts []string
	scrolls []string
}

func newFakeDocument(counts map[string]int) *fakeDocument {
	return &fakeDocument{counts: counts, targets: make(map[string][]*fakeTarget)}
}

func (d *fakeDocument) Insert(section domain.Section) []domain.BuildTarget {
	d.inserts = append(d.inserts, section.ID)
	var handles []domain.BuildTarget
	for i := 0; i < d.counts[section.ID]; i++ {
		t := &fakeTarget{}
		d.targets[section.ID] = append(d.targets[section.ID], t)
		handles = append(handles, t)
	}
	return handles
}

func (d *fakeDocument) ScrollTo(id string, smooth bool) { d.scrolls = append(d.scrolls, id) }

type statusLine struct {
	message string
	kind    domain.StatusKind
}

type fakeStatus struct {
	lines    []statusLine
	progress []int
}

func (s *fakeStatus) SetStatus(message string, kind domain.StatusKind) {
	s.lines = append(s.lines, statusLine{message, kind})
}

func (s *fakeStatus) SetProgress(percent int) { s.progress = append(s.progress, percent) }

func (s *fakeStatus) last() statusLine {
	if len(s.lines) == 0 {
		return statusLine{}
	}
	return s.lines[len(s.lines)-1]
}

func (s *fakeStatus) lastProgress() int {
	if len(s.progress) == 0 {
		return -1
	}
	return s.progress[len(s.progress)-1]
}

type fakeFeedback struct {
	confirms int
	errors   int
}

func (f *fakeFeedback) OnCharacterTyped(rune) {}
func (f *fakeFeedback) OnActionConfirmed()    { f.confirms++ }
func (f *fakeFeedback) OnErrorTriggered()     { f.errors++ }
