package orchestrator

import (
	"pipet/internal/bucket"
	"pipet/internal/proc"
)

// DefaultExt is the dataset extension assumed when a caller gives none.
const DefaultExt = "nii.gz"

// Category classifies a step code by the dataset namespace that claims it.
type Category int

const (
	CategoryNone Category = iota
	CategoryProcessed
	CategoryReported
	CategoryMasked
)

func (c Category) String() string {
	switch c {
	case CategoryProcessed:
		return "processed"
	case CategoryReported:
		return "reported"
	case CategoryMasked:
		return "masked"
	default:
		return "none"
	}
}

// Resolution is the outcome of mapping a step code onto the dataset: the
// owning category, the concrete step directory, and the bucket query that
// selects its files.
type Resolution struct {
	Code     string
	Category Category
	Dir      string
	Class    bucket.DataClass
	Filter   bucket.Filter
}

// Resolver maps step codes onto dataset categories for one processing
// interface.
type Resolver struct {
	iface *proc.Interface
}

// NewResolver builds a resolver over an interface's namespaces.
func NewResolver(iface *proc.Interface) *Resolver {
	return &Resolver{iface: iface}
}

// Resolve probes the processed, reported, and masked namespaces in that
// fixed priority order. The first namespace containing the code wins; a code
// present in none yields ok=false, which callers treat as an empty result
// rather than a failure. Mask data is not pipeline scoped, so the masked
// category omits the pipeline filter.
func (r *Resolver) Resolve(code, ext, regex string) (Resolution, bool) {
	if ext == "" {
		ext = DefaultExt
	}
	base := bucket.Filter{
		Pipeline: r.iface.Label(),
		Ext:      ext,
		Regex:    regex,
	}

	if dir, err := r.iface.StepDir(code); err == nil {
		base.Steps = dir
		return Resolution{Code: code, Category: CategoryProcessed, Dir: dir, Class: bucket.ClassProcessing, Filter: base}, true
	}
	if dir, err := r.iface.ReportDir(code); err == nil {
		base.Reports = dir
		return Resolution{Code: code, Category: CategoryReported, Dir: dir, Class: bucket.ClassResults, Filter: base}, true
	}
	if dir, err := r.iface.MaskDir(code); err == nil {
		base.Datatypes = dir
		base.Pipeline = ""
		return Resolution{Code: code, Category: CategoryMasked, Dir: dir, Class: bucket.ClassMask, Filter: base}, true
	}
	return Resolution{Code: code}, false
}
