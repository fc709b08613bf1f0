package progress_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pipet/internal/progress"
)

type fakeCounters struct {
	queued   atomic.Int64
	finished atomic.Int64
}

func (c *fakeCounters) Queued() int   { return int(c.queued.Load()) }
func (c *fakeCounters) Finished() int { return int(c.finished.Load()) }

func (c *fakeCounters) complete(n int64) {
	c.queued.Add(-n)
	c.finished.Add(n)
}

type recordingSink struct {
	mu       sync.Mutex
	total    int
	initial  int
	advances []int
	ended    bool
}

func (s *recordingSink) Begin(_ string, total, initial int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = total
	s.initial = initial
}

func (s *recordingSink) Advance(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advances = append(s.advances, n)
}

func (s *recordingSink) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
}

func (s *recordingSink) totalAdvanced() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := 0
	for _, n := range s.advances {
		sum += n
	}
	return sum
}

func TestTrackerCompletesRun(t *testing.T) {
	counters := &fakeCounters{}
	counters.queued.Store(3)
	sink := &recordingSink{}

	tracker := progress.NewTracker("denoise", counters, sink, progress.WithInterval(5*time.Millisecond))
	done := tracker.Start(context.Background())

	counters.complete(1)
	time.Sleep(20 * time.Millisecond)
	counters.complete(2)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tracker did not terminate")
	}

	if sink.total != 3 || sink.initial != 0 {
		t.Fatalf("unexpected begin values: total=%d initial=%d", sink.total, sink.initial)
	}
	if got := sink.totalAdvanced(); got != 3 {
		t.Fatalf("expected 3 advanced in total, got %d", got)
	}
	if !sink.ended {
		t.Fatal("sink End was not called")
	}
}

func TestTrackerSnapshotsTotalAtStart(t *testing.T) {
	counters := &fakeCounters{}
	counters.queued.Store(1)
	sink := &recordingSink{}

	tracker := progress.NewTracker("run", counters, sink, progress.WithInterval(5*time.Millisecond))
	done := tracker.Start(context.Background())

	// A job arriving after start must not extend the tracked run.
	counters.queued.Add(1)
	counters.complete(1)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tracker did not terminate after original total completed")
	}
	if sink.total != 1 {
		t.Fatalf("expected snapshotted total 1, got %d", sink.total)
	}
}

func TestTrackerAlreadyComplete(t *testing.T) {
	counters := &fakeCounters{}
	counters.finished.Store(4)
	sink := &recordingSink{}

	done := progress.NewTracker("noop", counters, sink).Start(context.Background())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tracker with nothing queued should finish immediately")
	}
	if sink.initial != 4 || sink.total != 4 {
		t.Fatalf("unexpected begin values: %+v", sink)
	}
	if len(sink.advances) != 0 {
		t.Fatalf("no advances expected, got %v", sink.advances)
	}
}

func TestTrackerHonorsCancellation(t *testing.T) {
	counters := &fakeCounters{}
	counters.queued.Store(5)
	sink := &recordingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	done := progress.NewTracker("stuck", counters, sink, progress.WithInterval(5*time.Millisecond)).Start(ctx)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tracker ignored context cancellation")
	}
	if !sink.ended {
		t.Fatal("sink End must run on cancellation")
	}
}

func TestWriterSinkOutput(t *testing.T) {
	var b strings.Builder
	sink := progress.NewWriterSink(&threadSafeWriter{b: &b})
	sink.Begin("denoise", 2, 0)
	sink.Advance(2)
	sink.End()

	out := b.String()
	for _, want := range []string{"denoise: 0/2", "denoise: 2/2", "denoise: done"} {
		if !strings.Contains(out, want) {
			t.Fatalf("writer sink output missing %q:\n%s", want, out)
		}
	}
}

type threadSafeWriter struct {
	mu sync.Mutex
	b  *strings.Builder
}

func (w *threadSafeWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.Write(p)
}
