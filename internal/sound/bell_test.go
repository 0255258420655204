package sound

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/retrofolio/internal/domain"
)

type memPrefs map[string]bool

func (m memPrefs) GetBool(key string) (bool, bool) { v, ok := m[key]; return v, ok }
func (m memPrefs) SetBool(key string, v bool) error { m[key] = v; return nil }
func (m memPrefs) Close() error                     { return nil }

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("closed")
}

func TestTypingCuesAreRateLimited(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, WithMaxPerSecond(1))

	for _, r := range "hello world" {
		b.OnCharacterTyped(r)
	}
	// Burst of one, no time passes between calls
	assert.Equal(t, 1, strings.Count(buf.String(), "\a"))
}

func TestConfirmAndErrorCues(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf)

	b.OnActionConfirmed()
	assert.Equal(t, confirmRings, strings.Count(buf.String(), "\a"))

	buf.Reset()
	b.OnErrorTriggered()
	assert.Equal(t, errorRings, strings.Count(buf.String(), "\a"))
}

func TestMuteSilencesAndPersists(t *testing.T) {
	var buf bytes.Buffer
	prefs := memPrefs{}
	b := New(&buf, WithStore(prefs))

	assert.True(t, b.ToggleMute())
	assert.True(t, prefs[domain.PrefMuted])

	b.OnCharacterTyped('a')
	b.OnActionConfirmed()
	b.OnErrorTriggered()
	assert.Empty(t, buf.String())

	restored := New(&buf, WithStore(prefs))
	assert.True(t, restored.Muted())
}

func TestWriteErrorsAreDropped(t *testing.T) {
	w := &failingWriter{}
	b := New(w)

	assert.NotPanics(t, func() { b.OnErrorTriggered() })
	assert.Equal(t, 1, w.calls)
}
