// Package pipeline defines the building blocks a pipeline package supplies:
// an ordered set of named steps and a declared parameter set, bound to a
// processing interface.
//
// Steps are registered explicitly at build time and invoked by contiguous
// zero-based index through a StepRegistry; there is no naming-convention
// reflection. Parameters are declared up front, so setting an undeclared
// name is an explicit lookup error rather than a silent attribute creation.
package pipeline
