package pipeline

import (
	"context"
	"fmt"
)

// StepRegistry maps contiguous zero-based indices to the steps of one
// definition and invokes them by index.
type StepRegistry struct {
	steps []Step
}

// NewStepRegistry snapshots the definition's steps in registration order.
func NewStepRegistry(def *Definition) *StepRegistry {
	return &StepRegistry{steps: def.Steps()}
}

// Len returns the number of registered steps.
func (r *StepRegistry) Len() int {
	return len(r.steps)
}

// Names returns the index-to-name mapping for every registered step.
func (r *StepRegistry) Names() map[int]string {
	out := make(map[int]string, len(r.steps))
	for i, step := range r.steps {
		out[i] = step.Name
	}
	return out
}

// Step returns the step at an index.
func (r *StepRegistry) Step(index int) (Step, error) {
	if index < 0 || index >= len(r.steps) {
		return Step{}, fmt.Errorf("%w: %d (have %d step(s))", ErrUnknownStepIndex, index, len(r.steps))
	}
	return r.steps[index], nil
}

// Invoke runs the step at an index. Invocation is opaque to the registry;
// the step body mutates the dataset through its processing interface.
func (r *StepRegistry) Invoke(ctx context.Context, index int) error {
	step, err := r.Step(index)
	if err != nil {
		return err
	}
	return step.Run(ctx)
}
