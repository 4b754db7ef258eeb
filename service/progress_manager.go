package service

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/ludo-technologies/jsplit/domain"
)

// IsInteractiveEnvironment reports whether stderr is attached to a terminal
// and the environment has not asked for plain output.
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewProgressManager draws progress on stderr when enabled and stderr is a
// terminal. Otherwise progress is dropped.
func NewProgressManager(enabled bool) domain.ProgressManager {
	if enabled && IsInteractiveEnvironment() {
		return NewTerminalProgress(os.Stderr)
	}
	return SilentProgress{}
}

// TerminalProgress draws one progress bar per task
type TerminalProgress struct {
	mu   sync.Mutex
	out  io.Writer
	bars []*progressbar.ProgressBar
}

// NewTerminalProgress draws bars to w whether or not it is a terminal
func NewTerminalProgress(w io.Writer) *TerminalProgress {
	return &TerminalProgress{out: w}
}

func (tp *TerminalProgress) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(tp.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(24),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	tp.mu.Lock()
	tp.bars = append(tp.bars, bar)
	tp.mu.Unlock()
	return &fileBar{bar: bar, label: description}
}

func (tp *TerminalProgress) IsInteractive() bool { return true }

// Close finishes every bar still open
func (tp *TerminalProgress) Close() {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	for _, bar := range tp.bars {
		_ = bar.Finish()
	}
	tp.bars = nil
}

// fileBar shows the file last analyzed next to the task label
type fileBar struct {
	bar   *progressbar.ProgressBar
	label string
}

func (b *fileBar) Increment(n int) { _ = b.bar.Add(n) }

func (b *fileBar) Describe(path string) {
	b.bar.Describe(b.label + " " + filepath.Base(path))
}

func (b *fileBar) Complete() { _ = b.bar.Finish() }

// SilentProgress discards progress
type SilentProgress struct{}

func (SilentProgress) StartTask(string, int) domain.TaskProgress { return NoOpTaskProgress{} }
func (SilentProgress) IsInteractive() bool                       { return false }
func (SilentProgress) Close()                                    {}

// NoOpTaskProgress discards task updates
type NoOpTaskProgress struct{}

func (NoOpTaskProgress) Increment(int)   {}
func (NoOpTaskProgress) Describe(string) {}
func (NoOpTaskProgress) Complete()       {}
