package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/retrofolio/internal/domain"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{0, "[....................]"},
		{14, "[||..................]"},
		{50, "[||||||||||..........]"},
		{99, "[|||||||||||||||||||.]"},
		{100, "[||||||||||||||||||||]"},
		{150, "[||||||||||||||||||||]"},
		{-5, "[....................]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.percent), "percent %d", tt.percent)
	}
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar("SYSTEM ONLINE")
	s.SetWidth(80)
	s.SetStatus("COMPILING HOME...", domain.StatusBusy)
	s.SetProgress(120)

	assert.Equal(t, "COMPILING HOME...", s.Message())
	assert.Equal(t, domain.StatusBusy, s.Kind())
	assert.Equal(t, 100, s.Percent())
	assert.Contains(t, s.View(), "100%")
	assert.NotContains(t, s.View(), "MUTED")

	s.SetMuted(true)
	assert.Contains(t, s.View(), "[MUTED]")
}
