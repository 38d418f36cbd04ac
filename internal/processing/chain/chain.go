package chain

import (
	"fmt"
	"time"

	"image-enhancer/internal/opencv/safe"
)

type ProcessingStep interface {
	Apply(input *safe.Mat) (*safe.Mat, error)
	Validate() error
	Name() string
}

// StepObserver is notified after every executed step.
type StepObserver func(step string, elapsed time.Duration, err error)

type ProcessingChain struct {
	steps    []ProcessingStep
	observer StepObserver
}

func NewProcessingChain(steps []ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

func (pc *ProcessingChain) SetObserver(observer StepObserver) {
	pc.observer = observer
}

// Execute validates every step before running any, then feeds each step's
// output into the next. input is never closed; intermediates are.
func (pc *ProcessingChain) Execute(input *safe.Mat) (*safe.Mat, error) {
	if len(pc.steps) == 0 {
		return nil, fmt.Errorf("processing chain has no steps")
	}

	for _, step := range pc.steps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("step %s: %w", step.Name(), err)
		}
	}

	current := input

	for _, step := range pc.steps {
		start := time.Now()
		result, err := step.Apply(current)
		if pc.observer != nil {
			pc.observer(step.Name(), time.Since(start), err)
		}

		if current != input {
			current.Close()
		}

		if err != nil {
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}

		current = result
	}

	return current, nil
}

func (pc *ProcessingChain) AddStep(step ProcessingStep) {
	pc.steps = append(pc.steps, step)
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
