package typewriter

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/retrofolio/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink records every write and scroll
type recordingSink struct {
	text    strings.Builder
	writes  int
	scrolls int
}

func (s *recordingSink) AppendText(t string) {
	s.text.WriteString(t)
	s.writes++
}

func (s *recordingSink) ScrollToBottom() { s.scrolls++ }

// expiringToken turns invalid when expired is set
type expiringToken struct{ expired bool }

func (t *expiringToken) Valid() bool { return !t.expired }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestTypeCompletionBound(t *testing.T) {
	texts := []string{"x", "hello", "<section class=\"hero\">\n  <h1>...</h1>\n</section>", strings.Repeat("ab ", 200)}

	for seed := uint64(1); seed <= 5; seed++ {
		for _, text := range texts {
			v := clock.NewVirtual()
			e := New(v, WithRand(seeded(seed)))
			sink := &recordingSink{}

			var finishedAt time.Duration = -1
			e.Type(Always{}, sink, text, func() { finishedAt = v.Now() })
			v.RunUntilIdle(1_000_000)

			n := time.Duration(len([]rune(text)))
			require.NotEqual(t, time.Duration(-1), finishedAt, "typing did not finish")
			assert.GreaterOrEqual(t, finishedAt, n*DefaultBaseSpeed)
			assert.LessOrEqual(t, finishedAt, n*(DefaultBaseSpeed+DefaultJitterMax))
			assert.Equal(t, text, sink.text.String())
			assert.Equal(t, len([]rune(text)), sink.writes)
			assert.Equal(t, sink.writes, sink.scrolls)
		}
	}
}

func TestTypeWithoutJitterIsExact(t *testing.T) {
	v := clock.NewVirtual()
	e := New(v, WithSpeed(10*time.Millisecond, 0))
	sink := &recordingSink{}

	var finishedAt time.Duration
	e.Type(Always{}, sink, "abcd", func() { finishedAt = v.Now() })

	// First character lands synchronously
	assert.Equal(t, "a", sink.text.String())

	v.Advance(10 * time.Millisecond)
	assert.Equal(t, "ab", sink.text.String())

	v.RunUntilIdle(100)
	assert.Equal(t, 40*time.Millisecond, finishedAt)
}

func TestTypeEmptyTextCompletesImmediately(t *testing.T) {
	v := clock.NewVirtual()
	e := New(v)
	sink := &recordingSink{}

	done := false
	e.Type(Always{}, sink, "", func() { done = true })

	assert.True(t, done)
	assert.Equal(t, 0, sink.writes)
	assert.Equal(t, 0, v.Pending())
}

func TestTypeInvalidTokenStopsStream(t *testing.T) {
	v := clock.NewVirtual()
	e := New(v, WithSpeed(10*time.Millisecond, 0))
	sink := &recordingSink{}
	tok := &expiringToken{}

	done := false
	e.Type(tok, sink, "abcdef", func() { done = true })
	v.Advance(20 * time.Millisecond)
	require.Equal(t, "abc", sink.text.String())

	tok.expired = true
	v.RunUntilIdle(100)

	assert.Equal(t, "abc", sink.text.String())
	assert.False(t, done)
}

func TestTypeCharacterHookSkipsWhitespace(t *testing.T) {
	v := clock.NewVirtual()
	var cues []rune
	e := New(v, WithCharacterHook(func(r rune) { cues = append(cues, r) }))

	e.Type(Always{}, &recordingSink{}, "a b\n\tc", nil)
	v.RunUntilIdle(100)

	assert.Equal(t, []rune{'a', 'b', 'c'}, cues)
}

func TestTypeMultibyteRunes(t *testing.T) {
	v := clock.NewVirtual()
	e := New(v)
	sink := &recordingSink{}

	e.Type(Always{}, sink, "héllo ✓", nil)
	v.RunUntilIdle(100)

	assert.Equal(t, "héllo ✓", sink.text.String())
	assert.Equal(t, 7, sink.writes)
}

func TestLinesPausesBetweenWholeLines(t *testing.T) {
	v := clock.NewVirtual()
	e := New(v)
	sink := &recordingSink{}

	var doneAt time.Duration = -1
	e.Lines(Always{}, sink, []string{"one", "two", "three"}, 300*time.Millisecond, func() { doneAt = v.Now() })

	assert.Equal(t, "one", sink.text.String())
	v.Advance(300 * time.Millisecond)
	assert.Equal(t, "one\ntwo", sink.text.String())
	v.Advance(300 * time.Millisecond)
	assert.Equal(t, "one\ntwo\nthree", sink.text.String())
	assert.Equal(t, time.Duration(-1), doneAt)

	v.Advance(300 * time.Millisecond)
	assert.Equal(t, 900*time.Millisecond, doneAt)
}

func TestDelayRange(t *testing.T) {
	e := New(clock.NewVirtual(), WithRand(seeded(42)))
	for i := 0; i < 1000; i++ {
		d := e.Delay()
		assert.GreaterOrEqual(t, d, DefaultBaseSpeed)
		assert.LessOrEqual(t, d, DefaultBaseSpeed+DefaultJitterMax)
	}
}
