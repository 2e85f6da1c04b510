package progress

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Tracker observes item completions.
type Tracker interface {
	// Increment records one completed item.
	Increment()
	// Finish flushes and terminates the indicator.
	Finish()
}

// New returns a progress bar over total items when out is a terminal, and a
// silent no-op tracker otherwise (pipes, CI logs, tests).
func New(total int, out io.Writer) Tracker {
	if !isTerminal(out) {
		return nopTracker{}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Optimizing images"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
	return &barTracker{bar: bar}
}

type barTracker struct {
	bar *progressbar.ProgressBar
}

func (t *barTracker) Increment() { _ = t.bar.Add(1) }
func (t *barTracker) Finish()    { _ = t.bar.Finish() }

// Nop returns a tracker that does nothing.
func Nop() Tracker {
	return nopTracker{}
}

type nopTracker struct{}

func (nopTracker) Increment() {}
func (nopTracker) Finish()    {}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
