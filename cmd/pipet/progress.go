package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"pipet/internal/progress"
)

// newProgressSink picks a terminal bar when stderr is a TTY and plain
// line-per-update output otherwise.
func newProgressSink() progress.Sink {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return &barSink{w: os.Stderr}
	}
	return progress.NewWriterSink(os.Stderr)
}

// barSink renders tracker updates through a terminal progress bar.
type barSink struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (s *barSink) Begin(label string, total, initial int) {
	s.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(s.w),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	if initial > 0 {
		_ = s.bar.Set(initial)
	}
}

func (s *barSink) Advance(n int) {
	if s.bar != nil {
		_ = s.bar.Add(n)
	}
}

func (s *barSink) End() {
	if s.bar != nil {
		_ = s.bar.Finish()
	}
}
