package linemode

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/retrofolio/internal/content"
	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/mmcdole/retrofolio/internal/sequencer"
)

// Zero delays keep the real-time loop fast
var fast = Options{Timings: sequencer.Timings{}}

func testRegistry(t *testing.T) *content.Registry {
	t.Helper()
	r, err := content.New([]domain.Section{
		{ID: "home", Label: "HOME", Filename: "index.html", Source: "<h1>hi</h1>", Markup: "# Hello\n\nWelcome.\n"},
		{ID: "contact", Label: "CONTACT", Filename: "contact.json", Source: "{}", Markup: "- one\n- two\n"},
	})
	require.NoError(t, err)
	return r
}

func runCompile(t *testing.T, ids []string, opts Options) (Result, string, string, error) {
	t.Helper()
	var out, status bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	res, err := Compile(ctx, testRegistry(t), ids, &out, NewLineReporter(&status), opts)
	return res, out.String(), status.String(), err
}

func TestCompileWritesEverySection(t *testing.T) {
	res, out, status, err := runCompile(t, nil, fast)
	require.NoError(t, err)

	assert.Equal(t, []string{"home", "contact"}, res.Sections)
	assert.Equal(t, len("<h1>hi</h1>")+len("{}"), res.Typed)

	assert.Contains(t, out, "== HOME ==\n# Hello\n\nWelcome.\n")
	assert.Contains(t, out, "== CONTACT ==\n  * one\n  * two\n")
	assert.Less(t, strings.Index(out, "HOME"), strings.Index(out, "CONTACT"))
	assert.NotContains(t, out, "<h1>")

	assert.Contains(t, status, "> INITIATING COMPILATION FOR [HOME]...")
	assert.Contains(t, status, "[100%] done")
}

func TestCompileEcho(t *testing.T) {
	opts := fast
	opts.Echo = true
	_, out, _, err := runCompile(t, []string{"home"}, opts)
	require.NoError(t, err)
	assert.Contains(t, out, "--- index.html ---\n<h1>hi</h1>")
}

func TestCompileSelectedAndRepeated(t *testing.T) {
	res, out, _, err := runCompile(t, []string{"contact", "contact"}, fast)
	require.NoError(t, err)
	assert.Equal(t, []string{"contact"}, res.Sections)
	assert.Equal(t, 1, strings.Count(out, "== CONTACT =="))
}

func TestCompileUnknownSection(t *testing.T) {
	_, _, _, err := runCompile(t, []string{"blog"}, fast)
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	opts := fast
	opts.BaseSpeed = time.Second
	_, err := Compile(ctx, testRegistry(t), nil, &out, NewLineReporter(&bytes.Buffer{}), opts)
	assert.ErrorContains(t, err, "interrupted")
}

func TestCompileWaitsForLateBlocks(t *testing.T) {
	// Both sources finish typing well before the lead-in ends
	opts := Options{
		Timings:   sequencer.DefaultTimings(),
		BaseSpeed: 10 * time.Millisecond,
		JitterMax: 15 * time.Millisecond,
	}
	res, out, status, err := runCompile(t, nil, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"home", "contact"}, res.Sections)
	assert.Contains(t, out, "== HOME ==\n# Hello\n\nWelcome.\n")
	assert.Contains(t, out, "== CONTACT ==\n  * one\n  * two\n")
	assert.Less(t, strings.Index(out, "Welcome."), strings.Index(out, "CONTACT"))
	assert.Contains(t, status, "[100%] done")
}
