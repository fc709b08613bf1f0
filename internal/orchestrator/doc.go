// Package orchestrator is the user-facing façade over pipet's pipeline
// machinery: package selection, step registry binding, parameter
// application, step execution, dataset resolution, and progress observation.
//
// An Orchestrator owns its current pipeline definition exclusively and
// rebuilds it from scratch whenever the selection or parameters change; the
// dataset bucket underneath is shared with every component derived from it.
// All façade operations run synchronously on the caller's goroutine; the
// only background activity is the progress tracker started by
// CheckProgression.
package orchestrator
