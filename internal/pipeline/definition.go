package pipeline

import (
	"context"

	"pipet/internal/proc"
)

// StepFunc is the body of one pipeline step. It receives the context that
// bounds the whole run and produces output by mutating the dataset through
// the definition's processing interface.
type StepFunc func(ctx context.Context) error

// Step is a named unit of work inside a definition.
type Step struct {
	Name string
	Doc  string
	Run  StepFunc
}

// Definition is an instantiated pipeline package: a titled, ordered list of
// steps plus declared parameters, bound to a processing interface.
type Definition struct {
	title  string
	iface  *proc.Interface
	steps  []Step
	params *Params
}

// NewDefinition starts an empty definition bound to an interface.
func NewDefinition(iface *proc.Interface, title string) *Definition {
	return &Definition{
		title:  title,
		iface:  iface,
		params: NewParams(),
	}
}

// Title returns the definition's pipeline title.
func (d *Definition) Title() string {
	return d.title
}

// Interface returns the bound processing interface.
func (d *Definition) Interface() *proc.Interface {
	return d.iface
}

// AddStep appends a step; indices follow registration order.
func (d *Definition) AddStep(name, doc string, run StepFunc) {
	d.steps = append(d.steps, Step{Name: name, Doc: doc, Run: run})
}

// Steps returns the registered steps in order.
func (d *Definition) Steps() []Step {
	out := make([]Step, len(d.steps))
	copy(out, d.steps)
	return out
}

// Params returns the definition's declared parameters.
func (d *Definition) Params() *Params {
	return d.params
}
