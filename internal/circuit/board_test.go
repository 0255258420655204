package circuit

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/retrofolio/internal/clock"
	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestNewBoardFillsIdlePool(t *testing.T) {
	b := NewBoard(40, 10, nil, seeded(1))
	idle, bursts := b.Counts()
	assert.Equal(t, IdleCircuits, idle)
	assert.Equal(t, 0, bursts)
}

func TestBurstSizeRange(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		b := NewBoard(40, 10, nil, seeded(seed))
		n := b.Burst()
		assert.GreaterOrEqual(t, n, 8)
		assert.LessOrEqual(t, n, 15)

		_, bursts := b.Counts()
		assert.Equal(t, n, bursts)
	}
}

func TestBurstsExpireAndIdlePoolHolds(t *testing.T) {
	b := NewBoard(60, 20, nil, seeded(7))
	b.Burst()

	for i := 0; i < 400; i++ {
		b.Step()
		idle, _ := b.Counts()
		require.LessOrEqual(t, idle, IdleCircuits)
	}
	_, bursts := b.Counts()
	assert.Equal(t, 0, bursts)
}

func TestSpeedFactor(t *testing.T) {
	tests := []struct {
		name  string
		state domain.VisualState
		want  float64
	}{
		{"idle", domain.VisualState{}, 1.5},
		{"surge", domain.VisualState{Surge: true}, 4.5},
		{"overload", domain.VisualState{Overload: true}, 7.5},
		{"overload wins", domain.VisualState{Overload: true, Surge: true}, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := domain.NewVisualBus()
			bus.Update(func(v *domain.VisualState) { *v = tt.state })

			b := NewBoard(200, 200, bus, seeded(3))
			tr := &trace{x: 100, y: 100, dir: Right, speed: 1.5, maxLife: 10}
			b.traces = []*trace{tr}

			b.Step()
			moved := math.Abs(tr.x-100) + math.Abs(tr.y-100)
			assert.InDelta(t, tt.want, moved, 1e-9)
		})
	}
}

func TestTraceDiesOutOfBounds(t *testing.T) {
	b := NewBoard(10, 10, nil, seeded(5))
	tr := &trace{x: 9.5, y: 5, dir: Right, speed: 1, maxLife: 10}
	b.traces = []*trace{tr}

	b.advance(tr, 1)
	if tr.dir == Right {
		assert.True(t, tr.dead)
	}
}

func TestJoltSurgeClearsAfterDuration(t *testing.T) {
	bus := domain.NewVisualBus()
	vc := clock.NewVirtual()
	b := NewBoard(40, 10, bus, seeded(9))

	b.Jolt(false, vc)
	assert.False(t, bus.State().Surge)
	assert.Equal(t, 0, vc.Pending())

	b.Jolt(true, vc)
	assert.True(t, bus.State().Surge)

	vc.Advance(SurgeDuration - time.Millisecond)
	assert.True(t, bus.State().Surge)
	vc.Advance(time.Millisecond)
	assert.False(t, bus.State().Surge)
}

func TestRenderShape(t *testing.T) {
	b := NewBoard(30, 6, nil, seeded(11))
	for i := 0; i < 20; i++ {
		b.Step()
	}

	rows := strings.Split(b.Plain(), "\n")
	require.Len(t, rows, 6)
	for _, row := range rows {
		assert.Equal(t, 30, len([]rune(row)))
	}
	assert.NotEmpty(t, b.Render())
}

func TestResizeClearsTrails(t *testing.T) {
	b := NewBoard(30, 6, nil, seeded(13))
	for i := 0; i < 10; i++ {
		b.Step()
	}
	b.Resize(12, 4)

	w, h := b.Size()
	assert.Equal(t, 12, w)
	assert.Equal(t, 4, h)
	assert.Equal(t, strings.Repeat(" ", 12), strings.Split(b.Plain(), "\n")[0])
}
