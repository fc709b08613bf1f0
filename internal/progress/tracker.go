package progress

import (
	"context"
	"time"
)

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = 200 * time.Millisecond

// Counters is the read-only view of a job scheduler the tracker observes.
type Counters interface {
	Queued() int
	Finished() int
}

// Tracker mirrors queued/finished counters into a Sink until the run it
// observed at start completes.
type Tracker struct {
	label    string
	counters Counters
	sink     Sink
	interval time.Duration
}

// Option adjusts tracker construction.
type Option func(*Tracker)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// NewTracker builds a tracker for the given counters and sink.
func NewTracker(label string, counters Counters, sink Sink, opts ...Option) *Tracker {
	t := &Tracker{
		label:    label,
		counters: counters,
		sink:     sink,
		interval: DefaultInterval,
	}
	if t.sink == nil {
		t.sink = NopSink{}
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start launches the polling loop in the background and returns a channel
// closed when the loop terminates. The total is snapshotted at start; the
// loop ends when the local finished count reaches it or the context is
// canceled.
func (t *Tracker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	queued := t.counters.Queued()
	finished := t.counters.Finished()
	total := queued + finished
	t.sink.Begin(t.label, total, finished)

	go func() {
		defer close(done)
		defer t.sink.End()

		if finished >= total {
			return
		}

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				delta := queued - t.counters.Queued()
				if delta > 0 {
					queued -= delta
					finished += delta
					t.sink.Advance(delta)
				}
				if finished >= total {
					return
				}
			}
		}
	}()
	return done
}
