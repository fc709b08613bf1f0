package proc

import "errors"

var (
	// ErrUnknownStepCode reports a step code with no matching directory in
	// the probed dataset category.
	ErrUnknownStepCode = errors.New("unknown step code")

	// ErrUnknownDestroyMode reports an unsupported DestroyStep mode.
	ErrUnknownDestroyMode = errors.New("unknown destroy mode")
)
