package linemode

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/mmcdole/retrofolio/internal/domain"
)

// Reporter shows compilation progress
type Reporter interface {
	domain.StatusDisplay
	// Pause clears any live display before other output is written
	Pause()
	Finish()
}

// BarReporter draws a live progress bar, for interactive terminals
type BarReporter struct {
	bar *progressbar.ProgressBar
}

// NewBarReporter creates a bar on w
func NewBarReporter(w io.Writer) *BarReporter {
	return &BarReporter{bar: progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("BOOTING"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionClearOnFinish(),
	)}
}

func (r *BarReporter) SetStatus(message string, kind domain.StatusKind) {
	r.bar.Describe(message)
}

func (r *BarReporter) SetProgress(percent int) {
	_ = r.bar.Set(percent)
}

func (r *BarReporter) Pause() { _ = r.bar.Clear() }

func (r *BarReporter) Finish() { _ = r.bar.Finish() }

// LineReporter prints one line per status change, for logs and pipes
type LineReporter struct {
	w       io.Writer
	percent int
	last    string
}

// NewLineReporter creates a reporter on w
func NewLineReporter(w io.Writer) *LineReporter {
	return &LineReporter{w: w}
}

func (r *LineReporter) SetStatus(message string, kind domain.StatusKind) {
	if message == r.last {
		return
	}
	r.last = message
	fmt.Fprintf(r.w, "[%3d%%] %s\n", r.percent, message)
}

func (r *LineReporter) SetProgress(percent int) { r.percent = percent }

func (r *LineReporter) Pause() {}

func (r *LineReporter) Finish() {
	fmt.Fprintf(r.w, "[%3d%%] done\n", r.percent)
}
