package pipeline

import "errors"

var (
	// ErrUnknownStepIndex reports a step invocation outside the registered
	// index range.
	ErrUnknownStepIndex = errors.New("unknown step index")

	// ErrUnknownParameterName reports a set on a parameter the definition
	// never declared.
	ErrUnknownParameterName = errors.New("unknown parameter name")
)
