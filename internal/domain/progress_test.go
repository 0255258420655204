package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressStatePercent(t *testing.T) {
	tests := []struct {
		name     string
		state    ProgressState
		expected int
	}{
		{"first section start", ProgressState{LoadedBefore: 0, Completed: 0, Targets: 4, Total: 5}, 0},
		{"first section half", ProgressState{LoadedBefore: 0, Completed: 2, Targets: 4, Total: 5}, 10},
		{"first section done", ProgressState{LoadedBefore: 0, Completed: 4, Targets: 4, Total: 5}, 20},
		{"second section two of three", ProgressState{LoadedBefore: 1, Completed: 2, Targets: 3, Total: 5}, 33},
		{"second section done", ProgressState{LoadedBefore: 1, Completed: 3, Targets: 3, Total: 5}, 40},
		{"last section done", ProgressState{LoadedBefore: 4, Completed: 1, Targets: 1, Total: 5}, 100},
		{"zero targets jumps to target", ProgressState{LoadedBefore: 2, Completed: 0, Targets: 0, Total: 5}, 60},
		{"rounding thirds", ProgressState{LoadedBefore: 0, Completed: 1, Targets: 1, Total: 3}, 33},
		{"empty registry", ProgressState{Total: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.Percent())
		})
	}
}

func TestProgressStateStartPercent(t *testing.T) {
	assert.Equal(t, 0, ProgressState{LoadedBefore: 0, Total: 5}.StartPercent())
	assert.Equal(t, 20, ProgressState{LoadedBefore: 1, Total: 5}.StartPercent())
	assert.Equal(t, 67, ProgressState{LoadedBefore: 2, Total: 3}.StartPercent())
}

func TestProgressMonotonicWithinSection(t *testing.T) {
	last := -1
	for done := 0; done <= 7; done++ {
		p := ProgressState{LoadedBefore: 3, Completed: done, Targets: 7, Total: 9}.Percent()
		assert.GreaterOrEqual(t, p, last)
		last = p
	}
	assert.Equal(t, 44, last)
}
