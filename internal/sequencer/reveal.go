package sequencer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/retrofolio/internal/domain"
)

// Outcome describes what a Reveal call did
type Outcome int

const (
	OutcomeIgnored  Outcome = iota // Unknown section or animation in progress
	OutcomeScrolled                // Already loaded; scrolled into view
	OutcomeStarted                 // New reveal running
)

func (o Outcome) String() string {
	switch o {
	case OutcomeScrolled:
		return "scrolled"
	case OutcomeStarted:
		return "started"
	default:
		return "ignored"
	}
}

// Reveal materializes a section behind the compilation modal, or scrolls to
// it if it is already loaded. Requests during another animation and requests
// for unknown ids are dropped; the returned error says which.
func (s *Sequencer) Reveal(id string) (Outcome, error) {
	if s.IsLoaded(id) {
		s.doc.ScrollTo(id, true)
		return OutcomeScrolled, nil
	}

	if s.animating {
		s.logger.Debug("reveal dropped", "section", id, "reason", "animating")
		return OutcomeIgnored, domain.ErrAnimating
	}

	section, ok := s.registry.Get(id)
	if !ok {
		s.logger.Debug("reveal dropped", "section", id, "reason", "unknown")
		return OutcomeIgnored, fmt.Errorf("%w: %q", domain.ErrSectionNotFound, id)
	}

	tok := s.begin()
	s.reveals++
	s.logger.Info("revealing section", "section", id, "generation", tok.gen)
	s.status.SetStatus(fmt.Sprintf(statusCompiling, strings.ToUpper(id)), domain.StatusBusy)
	s.modal.Open(section.Filename)

	// Mark loaded before animating so a duplicate request takes the fast path
	targets := s.doc.Insert(section)
	before := len(s.loaded)
	s.loaded[id] = struct{}{}
	s.doc.ScrollTo(id, true)

	progress := domain.ProgressState{
		LoadedBefore: before,
		Targets:      len(targets),
		Total:        s.registry.Len(),
	}
	s.setProgress(progress.StartPercent())

	s.typer.Type(tok, s.modal, section.Source, func() {
		s.sched.After(s.timings.Settle, func() {
			if !tok.Valid() {
				return
			}
			s.logger.Info("section compiled", "section", id)
			s.release(statusComplete)
		})
	})

	s.scheduleBuild(s.reveals, targets, progress, utf8.RuneCountInString(section.Source))

	return OutcomeStarted, nil
}

// buildInterval spreads the targets over the nominal typing duration
func (s *Sequencer) buildInterval(chars, targets int) time.Duration {
	if targets == 0 {
		return 0
	}
	return time.Duration(chars) * s.typer.BaseSpeed() / time.Duration(targets)
}

// scheduleBuild staggers reveal then morph for each target. Targets belong to
// their section and always finish. Progress updates stop once a later reveal
// starts; a reboot in between does not stop them.
func (s *Sequencer) scheduleBuild(reveal uint64, targets []domain.BuildTarget, progress domain.ProgressState, chars int) {
	interval := s.buildInterval(chars, len(targets))

	if len(targets) == 0 {
		s.sched.After(s.timings.LeadIn, func() {
			if s.reveals == reveal {
				s.setProgress(progress.Percent())
			}
		})
		return
	}

	completed := 0
	for i, target := range targets {
		s.sched.After(time.Duration(i)*interval+s.timings.LeadIn, func() {
			target.SetStatus(domain.BuildRevealed)
			completed++

			if s.reveals == reveal {
				p := progress
				p.Completed = completed
				s.setProgress(p.Percent())
			}

			s.sched.After(s.timings.MorphDelay, func() {
				target.SetStatus(domain.BuildMorphed)
			})
		})
	}
}
