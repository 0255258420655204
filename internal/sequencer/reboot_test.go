package sequencer

import (
	"testing"
	"time"

	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awaiting(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, portfolio(), nil, fixedSpeed())
	require.NoError(t, h.seq.Reboot())
	h.clock.Advance(1500 * time.Millisecond)
	require.Equal(t, RebootAwaiting, h.seq.State().Reboot)
	return h
}

func TestRebootPromptTiming(t *testing.T) {
	h := newHarness(t, portfolio(), nil, fixedSpeed())
	require.NoError(t, h.seq.Reboot())

	assert.True(t, h.modal.visible)
	assert.Equal(t, RebootFilename, h.modal.filename)
	assert.Equal(t, RebootPrompting, h.seq.State().Reboot)
	assert.True(t, h.seq.Animating())

	h.clock.Advance(1499 * time.Millisecond)
	assert.Equal(t, RebootPrompting, h.seq.State().Reboot)
	assert.False(t, h.modal.options)

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, RebootAwaiting, h.seq.State().Reboot)
	assert.True(t, h.modal.options)
	assert.Contains(t, h.modal.text.String(), "> ARE YOU SURE? [Y/N]_ ")
}

func TestRebootConfirmYesReloads(t *testing.T) {
	h := awaiting(t)

	require.NoError(t, h.seq.Confirm("y"))
	assert.False(t, h.modal.options)
	assert.Equal(t, RebootResetting, h.seq.State().Reboot)
	assert.True(t, h.visual.State().ErrorMode)
	assert.False(t, h.visual.State().Overload)
	assert.Equal(t, 1, h.feedback.confirms)

	h.clock.Advance(800 * time.Millisecond)
	assert.True(t, h.visual.State().Overload)
	assert.Equal(t, domain.StatusError, h.status.last().kind)
	assert.Equal(t, 1, h.feedback.errors)
	assert.Equal(t, 0, h.reloads)

	h.clock.Advance(2400 * time.Millisecond)
	assert.Equal(t, RebootReloading, h.seq.State().Reboot)
	assert.Equal(t, 1, h.reloads)

	text := h.modal.text.String()
	assert.Contains(t, text, "Y\n> PERMISSION GRANTED.")
	assert.Contains(t, text, "> WIPING MEMORY...")
	assert.Contains(t, text, "> CRITICAL FAILURE DETECTED...")
	assert.Contains(t, text, "> SYSTEM COLLAPSE IMMINENT.")
}

func TestRebootConfirmNoReturnsIdle(t *testing.T) {
	h := awaiting(t)

	require.NoError(t, h.seq.Confirm("N"))
	assert.Equal(t, RebootAborted, h.seq.State().Reboot)
	assert.Contains(t, h.modal.text.String(), "N\n> COMMAND CANCELLED.")

	h.clock.Advance(999 * time.Millisecond)
	assert.True(t, h.modal.visible)

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, RebootIdle, h.seq.State().Reboot)
	assert.False(t, h.modal.visible)
	assert.False(t, h.seq.Animating())
	assert.Equal(t, 1, h.idles)
	assert.Equal(t, StatusOnline, h.status.last().message)
	assert.Equal(t, 0, h.reloads)
	assert.False(t, h.visual.State().ErrorMode)
}

func TestRebootInvalidKeysLeaveStateUnchanged(t *testing.T) {
	h := awaiting(t)

	for _, key := range []string{"x", "yes", "", " ", "1"} {
		assert.ErrorIs(t, h.seq.Confirm(key), domain.ErrInvalidInput, "key %q", key)
	}
	assert.Equal(t, RebootAwaiting, h.seq.State().Reboot)
	assert.True(t, h.modal.options)
	assert.Equal(t, 0, h.feedback.confirms)
}

func TestRebootFirstDecisionWins(t *testing.T) {
	h := awaiting(t)

	require.NoError(t, h.seq.Choose(true))
	assert.ErrorIs(t, h.seq.Confirm("n"), domain.ErrNotAwaiting)
	assert.ErrorIs(t, h.seq.Choose(false), domain.ErrNotAwaiting)

	h.settle()
	assert.Equal(t, 1, h.reloads)
	assert.Equal(t, 1, h.feedback.confirms)
	assert.NotContains(t, h.modal.text.String(), "COMMAND CANCELLED")
}

func TestRebootInputOutsideAwaiting(t *testing.T) {
	h := newHarness(t, portfolio(), nil, fixedSpeed())

	assert.ErrorIs(t, h.seq.Confirm("y"), domain.ErrNotAwaiting)

	require.NoError(t, h.seq.Reboot())
	assert.ErrorIs(t, h.seq.Confirm("y"), domain.ErrNotAwaiting)
	assert.ErrorIs(t, h.seq.Choose(true), domain.ErrNotAwaiting)
	assert.Equal(t, RebootPrompting, h.seq.State().Reboot)
}

func TestRebootHoldsAnimationLock(t *testing.T) {
	h := newHarness(t, portfolio(), map[string]int{"home": 1}, fixedSpeed())
	require.NoError(t, h.seq.Reboot())

	_, err := h.seq.Reveal("home")
	assert.ErrorIs(t, err, domain.ErrAnimating)
	assert.ErrorIs(t, h.seq.Reboot(), domain.ErrAnimating)
	assert.Empty(t, h.doc.inserts)
}
