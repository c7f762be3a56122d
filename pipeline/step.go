package pipeline

import "context"

// Step represents a single pure unit of work in a pipeline.
// It reads the current state and returns a partial update to be merged
// into the running state by the enclosing Chain. A Step must not retain
// or mutate the state it receives.
type Step[S, D any] interface {
	// Name returns a unique identifier for the step.
	Name() string

	// Run executes the step against the current state and returns a delta.
	Run(ctx context.Context, state S) (D, error)
}

// Func is a function signature for simple step implementations.
type Func[S, D any] func(ctx context.Context, state S) (D, error)

// FuncStep wraps a function as a Step.
type FuncStep[S, D any] struct {
	name string
	fn   Func[S, D]
}

// NewStep creates a step from a function.
func NewStep[S, D any](name string, fn Func[S, D]) *FuncStep[S, D] {
	return &FuncStep[S, D]{name: name, fn: fn}
}

// Name returns the step name.
func (f *FuncStep[S, D]) Name() string { return f.name }

// Run executes the function.
func (f *FuncStep[S, D]) Run(ctx context.Context, state S) (D, error) {
	return f.fn(ctx, state)
}
