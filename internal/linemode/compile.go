package linemode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mmcdole/retrofolio/internal/clock"
	"github.com/mmcdole/retrofolio/internal/content"
	"github.com/mmcdole/retrofolio/internal/domain"
	"github.com/mmcdole/retrofolio/internal/sequencer"
	"github.com/mmcdole/retrofolio/internal/typewriter"
)

// Options configures a compile run
type Options struct {
	Timings   sequencer.Timings
	BaseSpeed time.Duration
	JitterMax time.Duration
	Echo      bool            // Type the section source to Out
	Feedback  domain.Feedback // Optional
	Logger    *slog.Logger
}

// Result summarizes a finished run
type Result struct {
	Sections []string
	Typed    int
	Elapsed  time.Duration
}

// Compile reveals every section in registry order, writing each compiled
// section to out as soon as its flow releases the animation lock.
func Compile(ctx context.Context, registry *content.Registry, ids []string, out io.Writer, reporter Reporter, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(ids) == 0 {
		ids = registry.IDs()
	}
	for _, id := range ids {
		if _, ok := registry.Get(id); !ok {
			return Result{}, fmt.Errorf("%w: %q", domain.ErrSectionNotFound, id)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := clock.NewLoop()
	console := NewConsole(out, opts.Echo)
	page := NewPage()

	feedback := opts.Feedback
	if feedback == nil {
		feedback = domain.NoOpFeedback{}
	}
	typer := typewriter.New(loop,
		typewriter.WithSpeed(opts.BaseSpeed, opts.JitterMax),
		typewriter.WithCharacterHook(feedback.OnCharacterTyped),
	)

	var (
		seq     *sequencer.Sequencer
		next    int
		written int
		runErr  error
	)

	// advance starts the next section; it always runs on the loop goroutine
	var advance func()
	advance = func() {
		if next >= len(ids) {
			cancel()
			return
		}
		id := ids[next]
		next++
		seq.SetActive(id)
		outcome, err := seq.Reveal(id)
		switch {
		case err != nil:
			runErr = fmt.Errorf("compiling %s: %w", id, err)
			cancel()
		case outcome != sequencer.OutcomeStarted:
			// Repeated id; nothing new to compile
			written++
			loop.After(0, advance)
		}
	}

	seq = sequencer.New(registry, loop, typer, sequencer.Surfaces{
		Modal:    console,
		Document: page,
		Status:   reporter,
		Feedback: feedback,
	},
		sequencer.WithTimings(opts.Timings),
		sequencer.WithLogger(logger),
		sequencer.WithIdleHook(func() {
			// The modal closes before the last build timers fire
			id := seq.Active()
			page.WhenCompiled(id, func() {
				reporter.Pause()
				io.WriteString(out, page.Render(id))
				written++
				logger.Debug("section written", "section", id)
				loop.After(0, advance)
			})
		}),
	)

	start := time.Now()
	loop.After(0, advance)

	err := loop.Run(ctx)
	reporter.Finish()

	result := Result{Sections: page.Sections(), Typed: console.Typed(), Elapsed: time.Since(start)}
	if runErr != nil {
		return result, runErr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return result, err
	}
	// A cancelled parent context ends the run early
	if written < len(ids) {
		return result, fmt.Errorf("compile interrupted after %d of %d sections", written, len(ids))
	}
	return result, nil
}
