package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/retrofolio/internal/linemode"
)

var echoSource bool

var compileCmd = &cobra.Command{
	Use:   "compile [section...]",
	Short: "Compile sections to stdout",
	Long: `Compile runs the reveal sequence without the full-screen interface and
writes each compiled section to stdout. Progress goes to stderr. With no
arguments every section is compiled in order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var reporter linemode.Reporter = linemode.NewLineReporter(os.Stderr)
		if term.IsTerminal(int(os.Stderr.Fd())) {
			reporter = linemode.NewBarReporter(os.Stderr)
		}

		base, jitter := a.cfg.Timing.Typing()
		res, err := linemode.Compile(ctx, a.registry, args, os.Stdout, reporter, linemode.Options{
			Timings:   a.cfg.Timing.Sequencer(),
			BaseSpeed: base,
			JitterMax: jitter,
			Echo:      echoSource,
			Logger:    a.logger,
		})
		if err != nil {
			return err
		}

		for _, id := range res.Sections {
			if err := a.prefs.RecordVisit(id); err != nil {
				a.logger.Warn("failed to record visit", "section", id, "error", err)
			}
		}
		a.logger.Info("compile finished", "sections", len(res.Sections), "typed", res.Typed, "elapsed", res.Elapsed)
		fmt.Fprintf(os.Stderr, "compiled %d sections (%d chars) in %s\n", len(res.Sections), res.Typed, res.Elapsed.Round(time.Millisecond))
		return nil
	},
}

func init() {
	compileCmd.Flags().BoolVar(&echoSource, "echo", false, "type each section's source before its content")
	rootCmd.AddCommand(compileCmd)
}
