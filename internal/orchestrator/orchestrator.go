package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pipet/internal/bucket"
	"pipet/internal/config"
	"pipet/internal/pipeline"
	"pipet/internal/plugin"
	"pipet/internal/proc"
	"pipet/internal/progress"
	"pipet/internal/textutil"
)

// Orchestrator composes package selection, step binding, parameter
// application, and execution over one dataset.
type Orchestrator struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *plugin.Registry
	echo     io.Writer
	workers  int
	verbose  bool

	bkt  *bucket.Bucket
	lock *flock.Flock

	// baseCtx bounds every job any interface built by this orchestrator
	// ever schedules.
	baseCtx context.Context

	selectedID int
	title      string
	def        *pipeline.Definition
	steps      *pipeline.StepRegistry
	iface      *proc.Interface
}

// Option adjusts orchestrator construction.
type Option func(*Orchestrator)

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRegistry selects the plugin registry to draw packages from; the
// process-wide default registry is used otherwise.
func WithRegistry(reg *plugin.Registry) Option {
	return func(o *Orchestrator) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithWorkers overrides the configured worker count.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithVerbose overrides the configured verbose echo.
func WithVerbose(v bool) Option {
	return func(o *Orchestrator) {
		o.verbose = v
	}
}

// WithEcho redirects the verbose echo output.
func WithEcho(w io.Writer) Option {
	return func(o *Orchestrator) {
		if w != nil {
			o.echo = w
		}
	}
}

// Open binds an orchestrator to the dataset at path, acquiring its lock and
// building the initial file index. The context bounds every job later
// scheduled through this orchestrator.
func Open(ctx context.Context, path string, cfg *config.Config, opts ...Option) (*Orchestrator, error) {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	o := &Orchestrator{
		cfg:        cfg,
		logger:     slog.Default(),
		registry:   plugin.Default(),
		echo:       os.Stdout,
		workers:    cfg.Workflow.Workers,
		verbose:    cfg.Logging.Verbose,
		baseCtx:    ctx,
		selectedID: -1,
	}
	for _, opt := range opts {
		opt(o)
	}

	bkt, err := bucket.Open(path)
	if err != nil {
		return nil, err
	}
	o.bkt = bkt

	o.lock = flock.New(filepath.Join(bkt.MetaDir(), "pipet.lock"))
	locked, err := o.lock.TryLock()
	if err != nil {
		_ = bkt.Close()
		return nil, fmt.Errorf("acquire dataset lock: %w", err)
	}
	if !locked {
		_ = bkt.Close()
		return nil, fmt.Errorf("%w: %s", ErrDatasetLocked, bkt.Root())
	}

	if err := bkt.Update(ctx); err != nil {
		_ = o.lock.Unlock()
		_ = bkt.Close()
		return nil, err
	}

	o.logger.Info("dataset opened", "path", bkt.Root(), "packages", o.registry.Len())
	if o.verbose {
		o.echoOpening(ctx)
	}
	return o, nil
}

func (o *Orchestrator) echoOpening(ctx context.Context) {
	if summary, err := o.bkt.Summary(ctx); err == nil {
		fmt.Fprintln(o.echo, summary)
	}
	fmt.Fprintln(o.echo, "\nList of installed pipeline packages:")
	titles := o.registry.Titles()
	for i := 0; i < o.registry.Len(); i++ {
		fmt.Fprintf(o.echo, "\t%d : %s\n", i, titles[i])
	}
}

// Close releases the dataset lock and index.
func (o *Orchestrator) Close() error {
	if o.lock != nil {
		_ = o.lock.Unlock()
	}
	return o.bkt.Close()
}

// InstalledPackages returns the registry's contiguous index-to-title view.
func (o *Orchestrator) InstalledPackages() map[int]string {
	return o.registry.Titles()
}

// SetPackage selects a package by registry index, then rebinds.
func (o *Orchestrator) SetPackage(ctx context.Context, id int, params map[string]any) error {
	pkg, err := o.registry.ByIndex(id)
	if err != nil {
		return fmt.Errorf("%w: %d", ErrInvalidPackageID, id)
	}

	prevID, prevTitle := o.selectedID, o.title
	o.selectedID = id
	o.title = pkg.Title
	if err := o.Reset(ctx, params); err != nil {
		o.selectedID, o.title = prevID, prevTitle
		return err
	}

	o.logger.Info("package selected", "id", id, "title", pkg.Title, "steps", o.steps.Len())
	if o.verbose {
		fmt.Fprintf(o.echo, "Package [%s] selected.\n", pkg.Title)
		if pkg.Doc != "" {
			fmt.Fprintln(o.echo, pkg.Doc)
		}
		fmt.Fprintln(o.echo, "Available pipelines in this package:")
		names := o.steps.Names()
		for i := 0; i < o.steps.Len(); i++ {
			fmt.Fprintf(o.echo, "\t%d : %s\n", i, names[i])
		}
	}
	return nil
}

// SetEmptyPackage binds an ad-hoc, unregistered pipeline title: an empty
// definition whose interface can still produce and resolve data.
func (o *Orchestrator) SetEmptyPackage(ctx context.Context, title string) error {
	label := textutil.SanitizeLabel(title)
	if label == "" {
		return fmt.Errorf("empty package title is not usable")
	}

	if err := o.bkt.Update(ctx); err != nil {
		return err
	}
	o.DetachPackage()

	iface := o.newInterface(label)
	if err := iface.Update(ctx); err != nil {
		return err
	}
	o.title = label
	o.iface = iface
	o.def = pipeline.NewDefinition(iface, label)
	o.steps = pipeline.NewStepRegistry(o.def)

	o.logger.Info("empty package initiated", "title", label)
	if o.verbose {
		fmt.Fprintf(o.echo, "temporary pipeline package [%s] is initiated.\n", label)
	}
	return nil
}

// DetachPackage reverts to the unselected state.
func (o *Orchestrator) DetachPackage() {
	o.selectedID = -1
	o.title = ""
	o.def = nil
	o.steps = nil
	o.iface = nil
}

func (o *Orchestrator) newInterface(label string) *proc.Interface {
	return proc.New(o.baseCtx, o.bkt, label, proc.Options{
		Workers: o.workers,
		Logger:  o.logger,
	})
}

// Reset rebuilds the step registry and parameter binder from the current
// selection and applies params as initial configuration. It is a no-op when
// nothing is selected. Binding is all-or-nothing: on failure the previous
// binding stays in place.
func (o *Orchestrator) Reset(ctx context.Context, params map[string]any) error {
	if o.title == "" {
		return nil
	}

	iface := o.newInterface(o.title)
	if err := iface.Update(ctx); err != nil {
		return err
	}

	var (
		def *pipeline.Definition
		err error
	)
	if o.selectedID >= 0 {
		pkg, pkgErr := o.registry.ByIndex(o.selectedID)
		if pkgErr != nil {
			return fmt.Errorf("%w: %d", ErrInvalidPackageID, o.selectedID)
		}
		def, err = pkg.Build(iface)
		if err != nil {
			return fmt.Errorf("build package %q: %w", o.title, err)
		}
	} else {
		def = pipeline.NewDefinition(iface, o.title)
	}

	if err := def.Params().Apply(params); err != nil {
		return err
	}

	o.iface = iface
	o.def = def
	o.steps = pipeline.NewStepRegistry(def)
	o.logger.Debug("binding rebuilt", "title", o.title, "steps", o.steps.Len())
	return nil
}

// SetParam applies configuration values to the active definition.
func (o *Orchestrator) SetParam(params map[string]any) error {
	if o.def == nil {
		return ErrNoPackageSelected
	}
	return o.def.Params().Apply(params)
}

// GetParam returns the active definition's current configuration.
func (o *Orchestrator) GetParam() (map[string]any, error) {
	if o.def == nil {
		return nil, ErrNoPackageSelected
	}
	return o.def.Params().All(), nil
}

// Run rebinds the selection, applies params, and invokes the step at index.
// It returns when the step body returns; jobs the step submitted may still
// be in flight and are observed through CheckProgression.
func (o *Orchestrator) Run(ctx context.Context, index int, params map[string]any) error {
	if o.title == "" {
		return ErrNoPackageSelected
	}
	if err := o.Reset(ctx, nil); err != nil {
		return err
	}
	if err := o.SetParam(params); err != nil {
		return err
	}

	step, err := o.steps.Step(index)
	if err != nil {
		return err
	}
	o.logger.Info("step invoked", "title", o.title, "index", index, "step", step.Name)
	if o.verbose && step.Doc != "" {
		fmt.Fprintln(o.echo, step.Doc)
	}
	return o.steps.Invoke(ctx, index)
}

// InstalledPipelines returns the active step registry's contiguous
// index-to-name view.
func (o *Orchestrator) InstalledPipelines() (map[int]string, error) {
	if o.steps == nil {
		return nil, ErrNoPackageSelected
	}
	return o.steps.Names(), nil
}

// Howto returns the documentation text for an installed package by index or
// title.
func (o *Orchestrator) Howto(ref any) (string, error) {
	return o.registry.Howto(ref)
}

// ValidStepCode reports whether a code is exactly three characters.
func ValidStepCode(code string) bool {
	return len(code) == 3
}

// Remove destroys previously produced data for each given step code. Mode
// selects the category the way DestroyStep does. Every code is validated
// before any data is destroyed, so a malformed element rejects the whole
// request without a partial deletion.
func (o *Orchestrator) Remove(ctx context.Context, mode string, codes ...string) error {
	if o.iface == nil {
		return ErrNoPackageSelected
	}
	for _, code := range codes {
		if !ValidStepCode(code) {
			return fmt.Errorf("%w: %q", ErrMalformedStepCode, code)
		}
	}
	for _, code := range codes {
		if err := o.iface.DestroyStep(ctx, code, mode); err != nil {
			return err
		}
	}
	return nil
}

// Dataset is a resolved, filtered view over previously produced data.
type Dataset struct {
	Code     string
	Category Category
	Dir      string
	Entries  []bucket.Entry
}

// DatasetOptions adjust dataset resolution.
type DatasetOptions struct {
	Ext   string
	Regex string
}

// GetDataset resolves a step code across the processed, reported, and
// masked namespaces and returns the matching files. A nil dataset with a
// nil error means the code owns no data anywhere.
func (o *Orchestrator) GetDataset(ctx context.Context, code string, opts DatasetOptions) (*Dataset, error) {
	if o.iface == nil {
		return nil, nil
	}
	if err := o.iface.Update(ctx); err != nil {
		return nil, err
	}

	res, ok := NewResolver(o.iface).Resolve(code, opts.Ext, opts.Regex)
	if !ok {
		return nil, nil
	}
	entries, err := o.bkt.Query(ctx, res.Class, res.Filter)
	if err != nil {
		return nil, err
	}
	return &Dataset{Code: code, Category: res.Category, Dir: res.Dir, Entries: entries}, nil
}

// CheckProgression starts a progress tracker over the active interface's
// job counters. It reports ok=false (and starts nothing) when no package is
// selected.
func (o *Orchestrator) CheckProgression(ctx context.Context, sink progress.Sink) (<-chan struct{}, bool) {
	if o.iface == nil {
		return nil, false
	}
	tracker := progress.NewTracker(
		o.title,
		o.iface.Scheduler(),
		sink,
		progress.WithInterval(o.cfg.PollInterval()),
	)
	return tracker.Start(ctx), true
}

// Wait blocks until every job scheduled by the active interface finishes.
func (o *Orchestrator) Wait() error {
	if o.iface == nil {
		return nil
	}
	return o.iface.Wait()
}

// Bucket returns the shared dataset bucket.
func (o *Orchestrator) Bucket() *bucket.Bucket {
	return o.bkt
}

// Interface returns the active processing interface, or nil when unselected.
func (o *Orchestrator) Interface() *proc.Interface {
	return o.iface
}

// Schedulers maps each step with submitted work to the scheduler running it.
func (o *Orchestrator) Schedulers() map[string]*proc.Scheduler {
	if o.iface == nil {
		return nil
	}
	out := make(map[string]*proc.Scheduler)
	for step := range o.iface.RunningObj() {
		out[step] = o.iface.Scheduler()
	}
	return out
}

// Managers maps each step with submitted work to its job identifiers.
func (o *Orchestrator) Managers() map[string][]uuid.UUID {
	if o.iface == nil {
		return nil
	}
	out := make(map[string][]uuid.UUID)
	for step := range o.iface.RunningObj() {
		out[step] = o.iface.JobIDs(step)
	}
	return out
}

// Title returns the selected pipeline title, empty when unselected.
func (o *Orchestrator) Title() string {
	return strings.TrimSpace(o.title)
}
