package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModalLifecycle(t *testing.T) {
	m := NewModal()
	m.SetSize(100, 40)
	assert.False(t, m.IsVisible())
	assert.Empty(t, m.View())

	m.Open("index.html")
	m.AppendText("<h1>")
	m.AppendText("hi</h1>")
	assert.True(t, m.IsVisible())
	assert.Equal(t, "<h1>hi</h1>", m.Text())
	assert.Contains(t, m.View(), "index.html")

	// Reopening starts from a blank buffer
	m.Open("projects.jsx")
	assert.Empty(t, m.Text())

	m.Close()
	assert.False(t, m.IsVisible())
}

func TestModalChoice(t *testing.T) {
	m := NewModal()
	m.SetSize(100, 40)
	m.Open("system_root.sh")

	m.ShowOptions(true)
	assert.True(t, m.OptionsVisible())
	assert.Equal(t, ChoiceNo, m.Choice())
	assert.Contains(t, m.View(), "YES")

	m.MoveChoice()
	assert.Equal(t, ChoiceYes, m.Choice())
	m.MoveChoice()
	assert.Equal(t, ChoiceNo, m.Choice())

	m.MoveChoice()
	m.ShowOptions(false)
	m.ShowOptions(true)
	assert.Equal(t, ChoiceNo, m.Choice())
}
