package proc

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// JobSpec describes one unit of work submitted by a pipeline step.
type JobSpec struct {
	Name string
	Run  func(context.Context) error
}

// Scheduler runs submitted jobs on a bounded worker pool and exposes the
// queued/finished counters a progress tracker polls. Queued counts jobs that
// have been submitted but not yet finished; it only shrinks as jobs finish.
type Scheduler struct {
	group    *errgroup.Group
	ctx      context.Context
	queued   atomic.Int64
	finished atomic.Int64

	mu      sync.Mutex
	waiting map[uuid.UUID]string
}

func newScheduler(ctx context.Context, workers int) *Scheduler {
	group, groupCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}
	return &Scheduler{
		group:   group,
		ctx:     groupCtx,
		waiting: make(map[uuid.UUID]string),
	}
}

// Submit queues a job and returns its identifier.
func (s *Scheduler) Submit(spec JobSpec) uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	s.waiting[id] = spec.Name
	s.mu.Unlock()
	s.queued.Add(1)

	s.group.Go(func() error {
		err := spec.Run(s.ctx)

		s.mu.Lock()
		delete(s.waiting, id)
		s.mu.Unlock()
		s.queued.Add(-1)
		s.finished.Add(1)
		return err
	})
	return id
}

// Queued returns the number of submitted jobs that have not finished.
func (s *Scheduler) Queued() int {
	return int(s.queued.Load())
}

// Finished returns the number of completed jobs.
func (s *Scheduler) Finished() int {
	return int(s.finished.Load())
}

// WaitingList returns the names of jobs that have not finished, sorted.
func (s *Scheduler) WaitingList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.waiting))
	for _, name := range s.waiting {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Wait blocks until every submitted job has finished and returns the first
// job error, if any.
func (s *Scheduler) Wait() error {
	return s.group.Wait()
}
