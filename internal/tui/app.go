package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/retrofolio/internal/circuit"
	"github.com/mmcdole/retrofolio/internal/clock"
	"github.com/mmcdole/retrofolio/internal/content"
	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/mmcdole/retrofolio/internal/nav"
	"github.com/mmcdole/retrofolio/internal/search"
	"github.com/mmcdole/retrofolio/internal/sequencer"
	"github.com/mmcdole/retrofolio/internal/sound"
	"github.com/mmcdole/retrofolio/internal/tui/components"
	"github.com/mmcdole/retrofolio/internal/typewriter"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBooting ApplicationState = iota
	StateBrowsing
	StateHelp
)

const (
	bootLinePause = 120 * time.Millisecond
	bootHold      = 1500 * time.Millisecond

	// Vertical layout: nav bar, blank line, status bar
	ChromeHeight  = 3
	CircuitHeight = 4
)

// Options configures the application model
type Options struct {
	Registry  *content.Registry
	Timings   sequencer.Timings
	BaseSpeed time.Duration
	JitterMax time.Duration
	Boot      bool // Show the boot screen unless already seen
	Circuit   bool
	FPS       int
	Store     domain.PreferenceStore // Optional
	Bell      *sound.Bell            // Optional; nil disables sound
	Logger    *slog.Logger

	// Scheduler overrides the tea-backed scheduler (tests drive a virtual clock)
	Scheduler clock.Scheduler
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	opts   Options
	epoch  uint64
	logger *slog.Logger

	// Core
	ticks     *teaScheduler // nil when opts.Scheduler is set
	sched     clock.Scheduler
	typer     *typewriter.Engine
	Sequencer *sequencer.Sequencer
	Nav       *nav.Controller
	visual    *domain.VisualBus
	visualCh  chan domain.VisualState
	observer  *ChannelObserver
	reload    *bool

	// UI Components
	Document *components.Document
	Modal    *components.Modal
	Status   *components.StatusBar
	Navbar   components.Navbar
	Palette  components.Palette
	Boot     *components.Boot
	Board    *circuit.Board

	// Dimensions
	Width  int
	Height int

	// UI state
	started   bool
	forceBoot bool
	flicker   bool
	lastErr   string
}

// NewModel creates a new application model
func NewModel(opts Options) Model {
	return newModel(opts, 1, false)
}

func newModel(opts Options, epoch uint64, forceBoot bool) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		State:     StateBrowsing,
		opts:      opts,
		epoch:     epoch,
		logger:    logger,
		visual:    domain.NewVisualBus(),
		visualCh:  make(chan domain.VisualState, 8),
		reload:    new(bool),
		Document:  components.NewDocument(),
		Modal:     components.NewModal(),
		Status:    components.NewStatusBar(sequencer.StatusOnline),
		Navbar:    components.NewNavbar(),
		Palette:   components.NewPalette(search.NewIndex(opts.Registry)),
		Boot:      components.NewBoot(),
		forceBoot: forceBoot,
	}

	if opts.Scheduler != nil {
		m.sched = opts.Scheduler
	} else {
		m.ticks = newTeaScheduler(epoch)
		m.sched = m.ticks
	}

	var feedback domain.Feedback = domain.NoOpFeedback{}
	if opts.Bell != nil {
		feedback = opts.Bell
		m.Status.SetMuted(opts.Bell.Muted())
	}

	m.typer = typewriter.New(m.sched,
		typewriter.WithSpeed(opts.BaseSpeed, opts.JitterMax),
		typewriter.WithCharacterHook(feedback.OnCharacterTyped),
	)

	reload := m.reload
	m.Sequencer = sequencer.New(opts.Registry, m.sched, m.typer, sequencer.Surfaces{
		Modal:    m.Modal,
		Document: m.Document,
		Status:   m.Status,
		Visual:   m.visual,
		Feedback: feedback,
		Reloader: domain.ReloaderFunc(func() { *reload = true }),
	}, sequencer.WithTimings(opts.Timings), sequencer.WithLogger(logger))

	m.Nav = nav.New(opts.Registry, m.Sequencer, m.Status, logger)
	m.Board = circuit.NewBoard(80, CircuitHeight, m.visual, nil)
	m.observer = NewChannelObserver(m.visualCh)
	m.visual.Subscribe(m.observer)

	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitVisualCmd(m.visualCh, m.epoch), FrameCmd(m.opts.FPS, m.epoch))
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)

	if *next.reload {
		return next.reloaded()
	}
	if next.ticks != nil {
		cmd = tea.Batch(cmd, next.ticks.Drain())
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		if !m.started {
			m.started = true
			return m, m.start()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case timerMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		msg.fn()
		if m.State == StateBooting && m.Boot.Expired() {
			return m, m.finishBoot()
		}
		return m, nil

	case FrameMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		// Frames keep ticking with the circuit hidden so it can be toggled back
		if m.opts.Circuit {
			m.Board.Step()
		}
		if m.visual.State().ErrorMode {
			m.flicker = !m.flicker
		}
		return m, FrameCmd(m.opts.FPS, m.epoch)

	case VisualMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.applyVisual(m.visual.State())
		return m, waitVisualCmd(m.visualCh, m.epoch)

	case ErrMsg:
		m.logger.Error("command failed", "context", msg.Context, "error", msg.Err)
		m.lastErr = msg.Error()
		return m, nil

	case SavedMsg:
		m.logger.Debug("saved", "key", msg.Key)
		return m, nil
	}

	return m, nil
}

// start shows the boot screen or goes straight to the first section
func (m *Model) start() tea.Cmd {
	if m.opts.Boot && (m.forceBoot || !m.bootSeen()) {
		m.State = StateBooting
		boot, sched := m.Boot, m.sched
		m.typer.Lines(boot, boot, components.BootLines, bootLinePause, func() {
			boot.Finish()
			sched.After(bootHold, boot.Expire)
		})
		return nil
	}
	return m.enter()
}

func (m *Model) bootSeen() bool {
	if m.opts.Store == nil {
		return false
	}
	seen, _ := m.opts.Store.GetBool(domain.PrefBootSeen)
	return seen
}

// finishBoot leaves the boot screen and reveals the first section
func (m *Model) finishBoot() tea.Cmd {
	m.Boot.Skip()
	return tea.Batch(SaveBoolCmd(m.opts.Store, domain.PrefBootSeen, true), m.enter())
}

func (m *Model) enter() tea.Cmd {
	m.State = StateBrowsing
	outcome, err := m.Nav.Start()
	if err != nil {
		m.logger.Warn("startup reveal failed", "error", err)
		return nil
	}
	if outcome != sequencer.OutcomeStarted {
		return nil
	}
	return RecordVisitCmd(m.opts.Store, m.Nav.Active())
}

// click routes a section request through the nav controller
func (m *Model) click(id string) tea.Cmd {
	m.Board.Jolt(true, m.sched)
	outcome, err := m.Nav.Click(id)
	if err != nil {
		m.logger.Debug("click ignored", "section", id, "error", err)
		return nil
	}
	m.Document.ClearLinkFocus()
	// Scrolling back to a loaded section is not a visit
	if outcome != sequencer.OutcomeStarted {
		return nil
	}
	return RecordVisitCmd(m.opts.Store, id)
}

func (m *Model) applyVisual(v domain.VisualState) {
	m.Modal.SetDanger(v.ErrorMode || v.Overload)
	m.Navbar.SetGlitch(v.ErrorMode)
}

// reloaded rebuilds the model from scratch, as after a power cycle
func (m Model) reloaded() (tea.Model, tea.Cmd) {
	m.logger.Info("reloading application", "epoch", m.epoch+1)
	m.observer.Close()

	next := newModel(m.opts, m.epoch+1, true)
	sized, cmd := next.update(tea.WindowSizeMsg{Width: m.Width, Height: m.Height})

	cmds := []tea.Cmd{sized.Init(), cmd}
	if sized.ticks != nil {
		cmds = append(cmds, sized.ticks.Drain())
	}
	return sized, tea.Batch(cmds...)
}

// Epoch identifies the current model generation; it grows on every reload
func (m Model) Epoch() uint64 { return m.epoch }

func (m *Model) updateLayout() {
	m.Navbar.SetWidth(m.Width)
	m.Status.SetWidth(m.Width)
	m.Modal.SetSize(m.Width, m.Height)

	docHeight := m.Height - ChromeHeight
	if m.opts.Circuit {
		docHeight -= CircuitHeight
		m.Board.Resize(m.Width, CircuitHeight)
	}
	m.Document.SetSize(m.Width, max(docHeight, 1))
}
