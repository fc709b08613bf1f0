package plugin

import (
	"errors"
	"fmt"
	"sync"

	"pipet/internal/pipeline"
	"pipet/internal/proc"
)

// BuildFunc instantiates a package's pipeline definition against a
// processing interface.
type BuildFunc func(iface *proc.Interface) (*pipeline.Definition, error)

// Package describes one installable pipeline package.
type Package struct {
	Title string
	Doc   string
	Build BuildFunc
}

// ErrUnknownPackage reports a lookup for a package the registry never saw.
var ErrUnknownPackage = errors.New("unknown package")

// Registry is an index-ordered collection of registered packages.
type Registry struct {
	mu       sync.RWMutex
	packages []Package
	byTitle  map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byTitle: make(map[string]int)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry packages register into.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a package to the default registry; it panics on error so a
// bad registration fails at program start.
func Register(pkg Package) {
	if err := defaultRegistry.Register(pkg); err != nil {
		panic(err)
	}
}

// Register adds a package. Titles must be unique and builds non-nil.
func (r *Registry) Register(pkg Package) error {
	if pkg.Title == "" {
		return errors.New("package title must not be empty")
	}
	if pkg.Build == nil {
		return fmt.Errorf("package %q has no build function", pkg.Title)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byTitle[pkg.Title]; exists {
		return fmt.Errorf("package %q already registered", pkg.Title)
	}
	r.byTitle[pkg.Title] = len(r.packages)
	r.packages = append(r.packages, pkg)
	return nil
}

// Len returns the number of registered packages.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.packages)
}

// Titles returns the contiguous index-to-title mapping.
func (r *Registry) Titles() map[int]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int]string, len(r.packages))
	for i, pkg := range r.packages {
		out[i] = pkg.Title
	}
	return out
}

// ByIndex returns the package at a registration index.
func (r *Registry) ByIndex(index int) (Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.packages) {
		return Package{}, fmt.Errorf("%w: index %d", ErrUnknownPackage, index)
	}
	return r.packages[index], nil
}

// ByTitle returns the package registered under a title.
func (r *Registry) ByTitle(title string) (Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byTitle[title]
	if !ok {
		return Package{}, fmt.Errorf("%w: %q", ErrUnknownPackage, title)
	}
	return r.packages[idx], nil
}

// Howto returns the documentation text for a package by index or title.
func (r *Registry) Howto(ref any) (string, error) {
	switch v := ref.(type) {
	case int:
		pkg, err := r.ByIndex(v)
		if err != nil {
			return "", err
		}
		return pkg.Doc, nil
	case string:
		pkg, err := r.ByTitle(v)
		if err != nil {
			return "", err
		}
		return pkg.Doc, nil
	default:
		return "", fmt.Errorf("%w: unsupported reference %T", ErrUnknownPackage, ref)
	}
}
