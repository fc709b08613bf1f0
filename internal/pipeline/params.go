package pipeline

import (
	"fmt"
	"sync"
)

// Params is the declared configuration of a pipeline definition. Only names
// declared at build time can be read or written afterwards.
type Params struct {
	mu     sync.RWMutex
	order  []string
	values map[string]any
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string]any)}
}

// Declare registers a parameter name with its default value. Re-declaring a
// name overwrites its default.
func (p *Params) Declare(name string, def any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.values[name]; !exists {
		p.order = append(p.order, name)
	}
	p.values[name] = def
}

// Set updates a declared parameter.
func (p *Params) Set(name string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.values[name]; !exists {
		return fmt.Errorf("%w: %q", ErrUnknownParameterName, name)
	}
	p.values[name] = value
	return nil
}

// Get returns the current value of a declared parameter.
func (p *Params) Get(name string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	value, ok := p.values[name]
	return value, ok
}

// String returns a declared parameter as a string; the empty string when it
// is unset or not a string.
func (p *Params) String(name string) string {
	value, ok := p.Get(name)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// All returns a copy of every declared parameter and its current value.
func (p *Params) All() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]any, len(p.values))
	for name, value := range p.values {
		out[name] = value
	}
	return out
}

// Names returns the declared parameter names in declaration order.
func (p *Params) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Apply sets every entry of values, failing on the first undeclared name.
func (p *Params) Apply(values map[string]any) error {
	for name, value := range values {
		if err := p.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}
