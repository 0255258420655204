package sequencer

import (
	"strings"

	"github.com/mmcdole/retrofolio/internal/domain"
)

// RebootState is the position in the reboot flow
type RebootState int

const (
	RebootIdle RebootState = iota
	RebootPrompting
	RebootAwaiting
	RebootResetting
	RebootReloading
	RebootAborted
)

func (r RebootState) String() string {
	switch r {
	case RebootIdle:
		return "idle"
	case RebootPrompting:
		return "prompting"
	case RebootAwaiting:
		return "awaiting_confirmation"
	case RebootResetting:
		return "resetting"
	case RebootReloading:
		return "reloading"
	case RebootAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// RebootFilename titles the modal during the reboot flow
const RebootFilename = "system_root.sh"

var rebootPrompt = []string{
	"> WARNING: CRITICAL PROCESS INITIATED",
	"> DETECTED USER REQUEST: HARD RESET",
	"> THIS WILL NUKE CURRENT SESSION DATA.",
	"> ",
	"> ARE YOU SURE? [Y/N]_ ",
}

// Reboot starts the reset prompt. It shares the animation lock with Reveal.
func (s *Sequencer) Reboot() error {
	if s.animating {
		s.logger.Debug("reboot dropped", "reason", "animating")
		return domain.ErrAnimating
	}

	tok := s.begin()
	s.reboot = RebootPrompting
	s.logger.Info("reboot requested", "generation", tok.gen)
	s.modal.Open(RebootFilename)

	s.typer.Lines(tok, s.modal, rebootPrompt, s.timings.RebootLine, func() {
		s.reboot = RebootAwaiting
		s.modal.ShowOptions(true)
	})
	return nil
}

// Confirm handles keyboard input while awaiting confirmation.
// Only Y and N (either case) are accepted; anything else leaves state unchanged.
func (s *Sequencer) Confirm(input string) error {
	if s.reboot != RebootAwaiting {
		return domain.ErrNotAwaiting
	}
	switch strings.ToUpper(input) {
	case "Y":
		return s.decide(true)
	case "N":
		return s.decide(false)
	default:
		return domain.ErrInvalidInput
	}
}

// Choose handles the on-screen YES/NO buttons
func (s *Sequencer) Choose(yes bool) error {
	if s.reboot != RebootAwaiting {
		return domain.ErrNotAwaiting
	}
	return s.decide(yes)
}

// decide is the single arbitration point for both input paths. Leaving
// RebootAwaiting disables keyboard and buttons together, so the first
// decision wins and any later one gets ErrNotAwaiting.
func (s *Sequencer) decide(yes bool) error {
	tok := token{s: s, gen: s.generation}
	s.modal.ShowOptions(false)
	s.feedback.OnActionConfirmed()

	if yes {
		s.reboot = RebootResetting
		s.modal.AppendText("Y")
		s.reset(tok)
	} else {
		s.reboot = RebootAborted
		s.modal.AppendText("N")
		s.abort(tok)
	}
	return nil
}

func (s *Sequencer) reset(tok token) {
	s.logger.Warn("hard reset confirmed")
	s.modal.AppendText("\n> PERMISSION GRANTED.")
	s.modal.AppendText("\n> WIPING MEMORY...")
	s.visual.Update(func(v *domain.VisualState) { v.ErrorMode = true })
	s.modal.ScrollToBottom()

	s.sched.After(s.timings.ResetPause, func() {
		if !tok.Valid() {
			return
		}
		s.modal.AppendText("\n> CRITICAL FAILURE DETECTED...")
		s.modal.AppendText("\n> SYSTEM COLLAPSE IMMINENT.")
		s.modal.ScrollToBottom()
		s.visual.Update(func(v *domain.VisualState) { v.Overload = true })
		s.status.SetStatus(statusFailure, domain.StatusError)
		s.feedback.OnErrorTriggered()

		s.sched.After(s.timings.ResetFinal, func() {
			if !tok.Valid() {
				return
			}
			s.reboot = RebootReloading
			s.logger.Info("reloading")
			s.reloader.Reload()
		})
	})
}

func (s *Sequencer) abort(tok token) {
	s.modal.AppendText("\n> COMMAND CANCELLED.")
	s.modal.ScrollToBottom()

	s.sched.After(s.timings.AbortDelay, func() {
		if !tok.Valid() {
			return
		}
		s.reboot = RebootIdle
		s.release(StatusOnline)
	})
}
