package pipeline

import (
	"context"
	"time"
)

// MergeFunc folds a step's delta into the running state. The merge is
// expected to be shallow: fields set in the delta overwrite their
// counterparts in the state, absent fields are preserved.
type MergeFunc[S, D any] func(state S, delta D) S

// Chain executes steps sequentially, merging each delta into the running
// state. Execution order is fixed at construction time.
type Chain[S, D any] struct {
	name  string
	merge MergeFunc[S, D]
	steps []Step[S, D]
}

// NewChain creates a sequential pipeline over the given steps.
func NewChain[S, D any](name string, merge MergeFunc[S, D], steps ...Step[S, D]) *Chain[S, D] {
	return &Chain[S, D]{name: name, merge: merge, steps: steps}
}

// Name returns the chain name.
func (c *Chain[S, D]) Name() string { return c.name }

// Run threads the initial state through every step in order and returns
// the final merged state. Cancellation is honored at each step boundary.
// A step failure leaves the running state unchanged by that step; with an
// ErrorHandler configured the chain records the failure and continues,
// otherwise it returns the state so far together with a StepError.
func (c *Chain[S, D]) Run(ctx context.Context, initial S, opts ...Option[S]) (S, error) {
	options := ApplyOptions(opts...)

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	state := initial

	for _, step := range c.steps {
		if err := ctx.Err(); err != nil {
			return state, &StepError{StepName: step.Name(), Err: err}
		}

		stepCtx := ctx
		if options.StepTimeout > 0 {
			var cancel context.CancelFunc
			stepCtx, cancel = context.WithTimeout(ctx, options.StepTimeout)
			defer cancel()
		}

		start := time.Now()
		delta, err := step.Run(stepCtx, state)
		if err != nil {
			if options.ErrorHandler != nil {
				state = options.ErrorHandler(ctx, state, step.Name(), err)
				continue
			}
			return state, &StepError{StepName: step.Name(), Err: err}
		}

		state = c.merge(state, delta)

		if options.OnStepComplete != nil {
			options.OnStepComplete(step.Name(), time.Since(start))
		}
	}

	return state, nil
}
