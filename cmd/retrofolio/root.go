package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/retrofolio/internal/adapter"
	"github.com/mmcdole/retrofolio/internal/content"
	"github.com/mmcdole/retrofolio/internal/sound"
	"github.com/mmcdole/retrofolio/internal/store"
	"github.com/mmcdole/retrofolio/internal/tui"
)

var (
	cfgFile string
	plain   bool
)

var rootCmd = &cobra.Command{
	Use:   "retrofolio",
	Short: "A portfolio that compiles itself in your terminal",
	Long: `retrofolio presents a portfolio as a retro operating system. Every
section is "compiled" in an editor window before its content appears.

Run without arguments for the full-screen interface. When stdout is not a
terminal, or with --plain, the sections are compiled to stdout instead.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
			return compileCmd.RunE(cmd, nil)
		}
		return runTUI()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+adapter.DefaultConfigFile()+")")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "compile to stdout instead of starting the interface")
}

// app holds what every subcommand needs
type app struct {
	cfg      *adapter.Config
	logger   *slog.Logger
	registry *content.Registry
	prefs    *store.PrefStore
	closeLog func() error
}

func loadApp() (*app, error) {
	cfg, err := adapter.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closeLog = adapter.NullLogger(), func() error { return nil }
	}
	slog.SetDefault(logger)

	registry, err := content.Load(cfg.Content.File)
	if err != nil {
		closeLog()
		return nil, err
	}

	prefs, err := store.Open(cfg.Store.Path)
	if err != nil {
		logger.Warn("preferences unavailable, using memory", "error", err)
		prefs, _ = store.Open("")
	}

	return &app{cfg: cfg, logger: logger, registry: registry, prefs: prefs, closeLog: closeLog}, nil
}

func (a *app) Close() {
	if err := a.prefs.Close(); err != nil {
		a.logger.Warn("failed to close preferences", "error", err)
	}
	a.closeLog()
}

func (a *app) bell() *sound.Bell {
	return sound.New(os.Stderr,
		sound.WithMaxPerSecond(a.cfg.Sound.MaxPerSecond),
		sound.WithStore(a.prefs),
		sound.WithLogger(a.logger),
		sound.WithMuted(!a.cfg.Sound.Enabled),
	)
}

func runTUI() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting retrofolio", "version", Version)

	base, jitter := a.cfg.Timing.Typing()
	model := tui.NewModel(tui.Options{
		Registry:  a.registry,
		Timings:   a.cfg.Timing.Sequencer(),
		BaseSpeed: base,
		JitterMax: jitter,
		Boot:      a.cfg.UI.Boot,
		Circuit:   a.cfg.UI.Circuit,
		FPS:       a.cfg.UI.FPS,
		Store:     a.prefs,
		Bell:      a.bell(),
		Logger:    a.logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
