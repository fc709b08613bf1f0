package progress

import (
	"fmt"
	"io"
	"sync"
)

// Sink receives push updates from a Tracker. Implementations decide how to
// render them: a terminal bar, log lines, or nothing at all.
type Sink interface {
	Begin(label string, total, initial int)
	Advance(n int)
	End()
}

// WriterSink renders plain progress lines to an io.Writer.
type WriterSink struct {
	mu      sync.Mutex
	w       io.Writer
	label   string
	total   int
	current int
}

// NewWriterSink builds a sink writing one line per update.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Begin(label string, total, initial int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
	s.total = total
	s.current = initial
	fmt.Fprintf(s.w, "%s: %d/%d\n", label, initial, total)
}

func (s *WriterSink) Advance(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current += n
	fmt.Fprintf(s.w, "%s: %d/%d\n", s.label, s.current, s.total)
}

func (s *WriterSink) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s: done\n", s.label)
}

// NopSink discards all updates.
type NopSink struct{}

func (NopSink) Begin(string, int, int) {}
func (NopSink) Advance(int)            {}
func (NopSink) End()                   {}
