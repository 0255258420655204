package linemode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/retrofolio/internal/domain"
)

func TestPageWhenCompiled(t *testing.T) {
	page := NewPage()
	targets := page.Insert(domain.Section{ID: "about", Label: "ABOUT", Markup: "# About\n\nText.\n"})
	require.Len(t, targets, 2)

	calls := 0
	page.WhenCompiled("about", func() { calls++ })
	assert.Equal(t, 0, calls)

	targets[0].SetStatus(domain.BuildRevealed)
	targets[0].SetStatus(domain.BuildMorphed)
	assert.Equal(t, 0, calls)
	assert.Equal(t, "== ABOUT ==\n# About\n", page.Render("about"))

	targets[1].SetStatus(domain.BuildMorphed)
	targets[1].SetStatus(domain.BuildMorphed)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "== ABOUT ==\n# About\n\nText.\n", page.Render("about"))

	page.WhenCompiled("about", func() { calls++ })
	assert.Equal(t, 2, calls)
}

func TestPageWhenCompiledWithoutBlocks(t *testing.T) {
	page := NewPage()
	require.Empty(t, page.Insert(domain.Section{ID: "empty"}))

	ran := false
	page.WhenCompiled("empty", func() { ran = true })
	assert.True(t, ran)

	ran = false
	page.WhenCompiled("missing", func() { ran = true })
	assert.True(t, ran)
}
