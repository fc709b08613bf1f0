package proc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pipet/internal/bucket"
)

// DestroyStep modes.
const (
	ModeProcessing = "processing"
	ModeReporting  = "reporting"
)

// Options configures an Interface.
type Options struct {
	Workers int
	Logger  *slog.Logger
}

// Interface binds a pipeline label to a bucket, tracks produced step
// directories per dataset category, and schedules the jobs steps submit.
type Interface struct {
	bkt     *bucket.Bucket
	label   string
	logger  *slog.Logger
	workers int
	sched   *Scheduler

	mu       sync.RWMutex
	executed map[string]string
	reported map[string]string
	masked   map[string]string
	running  map[string]*StepHandle
}

// StepHandle tracks the jobs submitted under one step name.
type StepHandle struct {
	Step   string
	JobIDs []uuid.UUID
}

// New builds an Interface for a pipeline label. The context bounds every job
// the interface ever schedules.
func New(ctx context.Context, bkt *bucket.Bucket, label string, opts Options) *Interface {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Interface{
		bkt:      bkt,
		label:    label,
		logger:   logger.With("pipeline", label),
		workers:  opts.Workers,
		sched:    newScheduler(ctx, opts.Workers),
		executed: make(map[string]string),
		reported: make(map[string]string),
		masked:   make(map[string]string),
		running:  make(map[string]*StepHandle),
	}
}

// Label returns the pipeline label the interface is bound to.
func (f *Interface) Label() string {
	return f.label
}

// Bucket returns the shared dataset bucket.
func (f *Interface) Bucket() *bucket.Bucket {
	return f.bkt
}

// Update refreshes the bucket index and the per-category step code maps.
func (f *Interface) Update(ctx context.Context) error {
	if err := f.bkt.Update(ctx); err != nil {
		return err
	}

	executed, err := f.codeMap(bucket.ClassProcessing, f.label)
	if err != nil {
		return err
	}
	reported, err := f.codeMap(bucket.ClassResults, f.label)
	if err != nil {
		return err
	}
	masked, err := f.codeMap(bucket.ClassMask, "")
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.executed = executed
	f.reported = reported
	f.masked = masked
	f.mu.Unlock()
	return nil
}

func (f *Interface) codeMap(class bucket.DataClass, pipeline string) (map[string]string, error) {
	dirs, err := f.bkt.StepDirs(class, pipeline)
	if err != nil {
		return nil, err
	}
	codes := make(map[string]string, len(dirs))
	for _, dir := range dirs {
		if code, ok := CodeFromDir(dir); ok {
			codes[code] = dir
		}
	}
	return codes, nil
}

// CodeFromDir extracts the step code from a "<code>_<name>" directory name.
func CodeFromDir(dir string) (string, bool) {
	if len(dir) < 5 || dir[3] != '_' {
		return "", false
	}
	return dir[:3], true
}

// Executed returns a copy of the processed-step code map.
func (f *Interface) Executed() map[string]string {
	return f.copyCodes(&f.executed)
}

// Reported returns a copy of the report code map.
func (f *Interface) Reported() map[string]string {
	return f.copyCodes(&f.reported)
}

// Masked returns a copy of the mask code map.
func (f *Interface) Masked() map[string]string {
	return f.copyCodes(&f.masked)
}

func (f *Interface) copyCodes(src *map[string]string) map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(*src))
	for code, dir := range *src {
		out[code] = dir
	}
	return out
}

// StepDir resolves a processed-step code to its directory name.
func (f *Interface) StepDir(code string) (string, error) {
	return f.lookup(&f.executed, code)
}

// ReportDir resolves a report code to its directory name.
func (f *Interface) ReportDir(code string) (string, error) {
	return f.lookup(&f.reported, code)
}

// MaskDir resolves a mask code to its directory name.
func (f *Interface) MaskDir(code string) (string, error) {
	return f.lookup(&f.masked, code)
}

func (f *Interface) lookup(src *map[string]string, code string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	dir, ok := (*src)[code]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownStepCode, code)
	}
	return dir, nil
}

// Submit queues jobs under a step name and records a handle for them.
func (f *Interface) Submit(step string, jobs ...JobSpec) *StepHandle {
	f.mu.Lock()
	handle, ok := f.running[step]
	if !ok {
		handle = &StepHandle{Step: step}
		f.running[step] = handle
	}
	f.mu.Unlock()

	for _, spec := range jobs {
		id := f.sched.Submit(spec)
		f.mu.Lock()
		handle.JobIDs = append(handle.JobIDs, id)
		f.mu.Unlock()
		f.logger.Debug("job submitted", "step", step, "job", spec.Name, "id", id)
	}
	return handle
}

// JobIDs returns a copy of the job identifiers submitted under a step name,
// taken under the interface lock so callers never observe a concurrent
// append.
func (f *Interface) JobIDs(step string) []uuid.UUID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	handle, ok := f.running[step]
	if !ok {
		return nil
	}
	ids := make([]uuid.UUID, len(handle.JobIDs))
	copy(ids, handle.JobIDs)
	return ids
}

// RunningObj returns the per-step handles for submitted work.
func (f *Interface) RunningObj() map[string]*StepHandle {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]*StepHandle, len(f.running))
	for step, handle := range f.running {
		out[step] = handle
	}
	return out
}

// Scheduler exposes the job counters for progress observation.
func (f *Interface) Scheduler() *Scheduler {
	return f.sched
}

// WaitingList returns the names of jobs that have not finished.
func (f *Interface) WaitingList() []string {
	return f.sched.WaitingList()
}

// Wait blocks until all submitted jobs finish.
func (f *Interface) Wait() error {
	return f.sched.Wait()
}

// StepOutputDir creates (when missing) and returns the processed-output
// directory for a step code and name.
func (f *Interface) StepOutputDir(code, name string) (string, error) {
	return f.ensureDir(filepath.Join(f.bkt.Root(), bucket.ClassProcessing.Dir(), f.label, code+"_"+name))
}

// ReportOutputDir creates (when missing) and returns the report directory
// for a step code and name.
func (f *Interface) ReportOutputDir(code, name string) (string, error) {
	return f.ensureDir(filepath.Join(f.bkt.Root(), bucket.ClassResults.Dir(), f.label, code+"_"+name))
}

// MaskOutputDir creates (when missing) and returns the mask directory for a
// step code and name. Masks are shared across pipelines.
func (f *Interface) MaskOutputDir(code, name string) (string, error) {
	return f.ensureDir(filepath.Join(f.bkt.Root(), bucket.ClassMask.Dir(), code+"_"+name))
}

func (f *Interface) ensureDir(path string) (string, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("create step directory: %w", err)
	}
	return path, nil
}

// DestroyStep removes the directory a step code produced. Mode selects the
// category: "processing" removes processed output, "reporting" removes the
// report directory.
func (f *Interface) DestroyStep(ctx context.Context, code, mode string) error {
	var (
		dir  string
		base string
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeProcessing, "":
		dir, err = f.StepDir(code)
		base = filepath.Join(f.bkt.Root(), bucket.ClassProcessing.Dir(), f.label)
	case ModeReporting:
		dir, err = f.ReportDir(code)
		base = filepath.Join(f.bkt.Root(), bucket.ClassResults.Dir(), f.label)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDestroyMode, mode)
	}
	if err != nil {
		return err
	}

	target := filepath.Join(base, dir)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("destroy step %s: %w", code, err)
	}
	f.logger.Info("step destroyed", "code", code, "dir", dir, "mode", mode)
	return f.Update(ctx)
}
