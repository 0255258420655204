package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/retrofolio/internal/sequencer"
	"github.com/mmcdole/retrofolio/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	// ctrl+c always quits; q is a letter while the palette has focus
	if msg.Type == tea.KeyCtrlC || (key.Matches(msg, Keys.Quit) && !m.Palette.IsVisible()) {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateBooting:
		// Any key skips the boot screen
		return m, m.finishBoot()

	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	if m.Palette.IsVisible() {
		var cmd tea.Cmd
		var chosen string
		m.Palette, cmd, chosen = m.Palette.Update(msg)
		if chosen != "" {
			return m, tea.Batch(cmd, m.click(chosen))
		}
		return m, cmd
	}

	if m.Sequencer.State().Reboot == sequencer.RebootAwaiting {
		return m.handleRebootKey(msg)
	}

	// Scrolling works even while an animation runs
	switch {
	case key.Matches(msg, Keys.Up):
		m.Document.Scroll(-1)
		return m, nil
	case key.Matches(msg, Keys.Down):
		m.Document.Scroll(1)
		return m, nil
	case key.Matches(msg, Keys.PageUp):
		m.Document.Page(-1)
		return m, nil
	case key.Matches(msg, Keys.PageDown):
		m.Document.Page(1)
		return m, nil
	case key.Matches(msg, Keys.Top):
		m.Document.Scroll(-1 << 20)
		return m, nil
	case key.Matches(msg, Keys.Bottom):
		m.Document.Scroll(1 << 20)
		return m, nil
	case key.Matches(msg, Keys.Mute):
		if m.opts.Bell != nil {
			m.Status.SetMuted(m.opts.Bell.ToggleMute())
		}
		return m, nil
	case key.Matches(msg, Keys.Circuit):
		m.opts.Circuit = !m.opts.Circuit
		m.updateLayout()
		return m, nil
	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil
	}

	// Everything else starts or steers a flow; the modal owns the screen meanwhile
	if m.Sequencer.Animating() {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Reboot):
		m.Board.Jolt(true, m.sched)
		if err := m.Sequencer.Reboot(); err != nil {
			m.logger.Debug("reboot ignored", "error", err)
		}
		return m, nil

	case key.Matches(msg, Keys.Palette):
		return m, m.Palette.Show()

	case key.Matches(msg, Keys.Left):
		m.Navbar.SetFocused(true)
		m.Nav.Move(-1)
		return m, nil

	case key.Matches(msg, Keys.Right):
		m.Navbar.SetFocused(true)
		m.Nav.Move(1)
		return m, nil

	case key.Matches(msg, Keys.NextLink):
		m.Navbar.SetFocused(false)
		m.Document.FocusNextLink()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if link, ok := m.Document.FocusedLink(); ok {
			id, _ := link.NavTarget()
			return m, m.click(id)
		}
		entries := m.Nav.Entries()
		if len(entries) == 0 {
			return m, nil
		}
		m.Navbar.SetFocused(false)
		return m, m.click(entries[m.Nav.Cursor()].ID)

	case key.Matches(msg, Keys.Jump):
		n, _ := strconv.Atoi(msg.String())
		entries := m.Nav.Entries()
		if n < 1 || n > len(entries) {
			return m, nil
		}
		return m, m.click(entries[n-1].ID)

	case key.Matches(msg, Keys.Escape):
		m.Document.ClearLinkFocus()
		m.Navbar.SetFocused(false)
		if entries := m.Nav.Entries(); len(entries) > 0 {
			m.Nav.Leave(entries[m.Nav.Cursor()].ID)
		}
		return m, nil
	}

	return m, nil
}

// handleRebootKey routes keys while the reset prompt awaits an answer.
// y/n go through the keyboard path; left/right/enter drive the buttons.
func (m Model) handleRebootKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, Keys.Left, Keys.Right, Keys.NextLink):
		m.Modal.MoveChoice()
		return m, nil
	case key.Matches(msg, Keys.Enter):
		m.Board.Jolt(true, m.sched)
		err = m.Sequencer.Choose(m.Modal.Choice() == components.ChoiceYes)
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		err = m.Sequencer.Confirm(string(msg.Runes))
	default:
		return m, nil
	}
	if err != nil {
		m.logger.Debug("reboot input ignored", "key", msg.String(), "error", err)
	}
	return m, nil
}

// handleMouseMsg scrolls on the wheel; any click sparks a burst
func (m Model) handleMouseMsg(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.Document.Scroll(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.Document.Scroll(3)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.Board.Jolt(false, m.sched)
	}
	return m, nil
}
