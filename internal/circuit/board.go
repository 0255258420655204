// Package circuit animates the decorative motherboard traces behind the UI.
//
// The board is a grid of cells. Traces walk the grid leaving a fading trail;
// a small idle pool is kept alive and clicks spawn short-lived bursts. The
// global look (surge, overload) is read from the shared VisualBus.
package circuit

import (
	"math/rand/v2"
	"time"

	"github.com/mmcdole/retrofolio/internal/clock"
	"github.com/mmcdole/retrofolio/internal/domain"
)

const (
	IdleCircuits  = 4
	BurstMin      = 8
	BurstSpread   = 8 // Burst size is BurstMin + [0, BurstSpread)
	SurgeDuration = 500 * time.Millisecond

	surgeFactor    = 3
	overloadFactor = 5
	turnChance     = 0.05
	fade           = 0.7
	minHeat        = 0.05
)

// Direction a trace travels in
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

func (d Direction) vertical() bool { return d == Up || d == Down }

type trace struct {
	x, y    float64
	dir     Direction
	speed   float64 // Cells per frame
	life    int
	maxLife int
	burst   bool
	dead    bool
}

// Cell is one rendered grid position
type Cell struct {
	Heat float64 // 0 is empty, 1 is a fresh trail
	Head bool
	Dir  Direction
}

// Board holds the traces and their trails
type Board struct {
	width, height int
	rng           *rand.Rand
	bus           *domain.VisualBus
	traces        []*trace
	cells         [][]Cell
}

// NewBoard creates a board of the given size with a full idle pool
func NewBoard(width, height int, bus *domain.VisualBus, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if bus == nil {
		bus = domain.NewVisualBus()
	}
	b := &Board{rng: rng, bus: bus}
	b.Resize(width, height)
	for i := 0; i < IdleCircuits; i++ {
		b.traces = append(b.traces, b.spawn(false))
	}
	return b
}

// Resize changes the grid size and clears the trails
func (b *Board) Resize(width, height int) {
	b.width, b.height = max(width, 1), max(height, 1)
	b.cells = make([][]Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]Cell, b.width)
	}
	for _, t := range b.traces {
		if !b.inBounds(t.x, t.y) {
			t.dead = true
		}
	}
}

func (b *Board) spawn(burst bool) *trace {
	speed := (2 + b.rng.Float64()*2) / 10
	if burst {
		speed *= 1.5
	}
	return &trace{
		x:       b.rng.Float64() * float64(b.width),
		y:       b.rng.Float64() * float64(b.height),
		dir:     Direction(b.rng.IntN(4)),
		speed:   speed,
		maxLife: 100 + b.rng.IntN(200),
		burst:   burst,
	}
}

// Burst spawns 8..15 short-lived traces
func (b *Board) Burst() int {
	n := BurstMin + b.rng.IntN(BurstSpread)
	for i := 0; i < n; i++ {
		b.traces = append(b.traces, b.spawn(true))
	}
	return n
}

// Jolt reacts to a click: always a burst, plus a timed surge when the
// click landed on something interactive.
func (b *Board) Jolt(interactive bool, sched clock.Scheduler) {
	b.Burst()
	if !interactive {
		return
	}
	b.bus.Update(func(v *domain.VisualState) { v.Surge = true })
	sched.After(SurgeDuration, func() {
		b.bus.Update(func(v *domain.VisualState) { v.Surge = false })
	})
}

// Step advances one frame
func (b *Board) Step() {
	for y := range b.cells {
		for x := range b.cells[y] {
			c := &b.cells[y][x]
			c.Head = false
			c.Heat *= fade
			if c.Heat < minHeat {
				c.Heat = 0
			}
		}
	}

	// Dead bursts are dropped; dead idle traces are respawned up to the pool size
	alive := b.traces[:0]
	for _, t := range b.traces {
		if t.dead && t.burst {
			continue
		}
		alive = append(alive, t)
	}
	b.traces = alive

	idle := 0
	for i, t := range b.traces {
		if t.burst {
			continue
		}
		if t.dead && idle < IdleCircuits {
			b.traces[i] = b.spawn(false)
			t = b.traces[i]
		}
		if !t.dead {
			idle++
		}
	}

	factor := b.speedFactor()
	for _, t := range b.traces {
		b.advance(t, factor)
	}
}

func (b *Board) speedFactor() float64 {
	state := b.bus.State()
	switch {
	case state.Overload:
		return overloadFactor
	case state.Surge:
		return surgeFactor
	default:
		return 1
	}
}

func (b *Board) advance(t *trace, factor float64) {
	if t.dead {
		return
	}
	t.life++
	if t.life > t.maxLife {
		t.dead = true
		return
	}

	if b.rng.Float64() < turnChance {
		if t.dir.vertical() {
			t.dir = []Direction{Right, Left}[b.rng.IntN(2)]
		} else {
			t.dir = []Direction{Up, Down}[b.rng.IntN(2)]
		}
	}

	// Walk cell by cell so fast traces still leave a continuous trail
	dist := t.speed * factor
	for dist > 0 {
		step := min(dist, 1)
		dist -= step
		switch t.dir {
		case Up:
			t.y -= step
		case Right:
			t.x += step
		case Down:
			t.y += step
		case Left:
			t.x -= step
		}
		if !b.inBounds(t.x, t.y) {
			t.dead = true
			return
		}
		c := &b.cells[int(t.y)][int(t.x)]
		c.Heat = 1
		c.Dir = t.dir
	}
	b.cells[int(t.y)][int(t.x)].Head = true
}

func (b *Board) inBounds(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(b.width) && y < float64(b.height)
}

// Cells returns the current grid (shared, do not modify)
func (b *Board) Cells() [][]Cell { return b.cells }

// Size returns the grid dimensions
func (b *Board) Size() (int, int) { return b.width, b.height }

// Counts returns live idle and burst trace counts
func (b *Board) Counts() (idle, bursts int) {
	for _, t := range b.traces {
		if t.dead {
			continue
		}
		if t.burst {
			bursts++
		} else {
			idle++
		}
	}
	return idle, bursts
}
