package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/retrofolio/internal/clock"
	"github.com/mmcdole/retrofolio/internal/domain"
)

// teaScheduler implements clock.Scheduler on top of tea.Tick.
// After only queues a command; Update drains the queue into its return
// value, and the fired timerMsg runs fn inside Update.
type teaScheduler struct {
	epoch   uint64
	pending []tea.Cmd
}

var _ clock.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler(epoch uint64) *teaScheduler {
	return &teaScheduler{epoch: epoch}
}

func (s *teaScheduler) After(d time.Duration, fn func()) {
	epoch := s.epoch
	s.pending = append(s.pending, tea.Tick(max(d, 0), func(time.Time) tea.Msg {
		return timerMsg{epoch: epoch, fn: fn}
	}))
}

// Drain returns every queued timer as one command
func (s *teaScheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Command factories for background operations

// FrameCmd schedules the next circuit frame
func FrameCmd(fps int, epoch uint64) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(fps, 1)), func(time.Time) tea.Msg {
		return FrameMsg{epoch: epoch}
	})
}

// SaveBoolCmd persists a preference flag
func SaveBoolCmd(store domain.PreferenceStore, key string, value bool) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if err := store.SetBool(key, value); err != nil {
			return ErrMsg{Err: err, Context: "saving " + key}
		}
		return SavedMsg{Key: key}
	}
}

// visitRecorder is implemented by stores that count section reveals
type visitRecorder interface {
	RecordVisit(id string) error
}

// RecordVisitCmd counts a reveal when the store supports it
func RecordVisitCmd(store domain.PreferenceStore, id string) tea.Cmd {
	rec, ok := store.(visitRecorder)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		if err := rec.RecordVisit(id); err != nil {
			return ErrMsg{Err: err, Context: "recording visit"}
		}
		return SavedMsg{Key: "visit:" + id}
	}
}
