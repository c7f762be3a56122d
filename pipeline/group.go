package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Aggregator folds the deltas from a Group's branches into a single delta.
// The errs map contains per-branch failures, giving the aggregator full
// visibility into which branches succeeded and which did not.
type Aggregator[S, D any] func(state S, results map[string]D, errs map[string]error) (D, error)

// Group executes steps concurrently against the same input state and
// aggregates their deltas. It implements Step, so it can be placed in a
// Chain wherever independent work should fan out.
type Group[S, D any] struct {
	name          string
	steps         []Step[S, D]
	aggregate     Aggregator[S, D]
	branchTimeout time.Duration
}

// GroupOption configures a Group at construction time.
type GroupOption func(*groupConfig)

type groupConfig struct {
	branchTimeout time.Duration
}

// WithBranchTimeout bounds each branch's execution. A branch exceeding the
// timeout fails with its context error and is reported to the aggregator
// like any other branch failure.
func WithBranchTimeout(d time.Duration) GroupOption {
	return func(c *groupConfig) {
		c.branchTimeout = d
	}
}

// NewGroup creates a fan-out/fan-in step. The aggregator is required:
// deltas are opaque to the engine, so only the caller can combine them.
func NewGroup[S, D any](name string, steps []Step[S, D], aggregate Aggregator[S, D], opts ...GroupOption) *Group[S, D] {
	if aggregate == nil {
		panic("pipeline: group aggregator is required")
	}
	cfg := &groupConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Group[S, D]{
		name:          name,
		steps:         steps,
		aggregate:     aggregate,
		branchTimeout: cfg.branchTimeout,
	}
}

// Name returns the group name.
func (g *Group[S, D]) Name() string { return g.name }

// Run executes all branches concurrently, waits for every branch to
// finish, and folds the collected deltas through the aggregator.
func (g *Group[S, D]) Run(ctx context.Context, state S) (D, error) {
	results := make(map[string]D, len(g.steps))
	errs := make(map[string]error)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, step := range g.steps {
		wg.Add(1)
		go func(s Step[S, D]) {
			defer wg.Done()

			// A branch panic must not escape its goroutine: it would
			// bypass any recover installed around the chain and kill
			// the process. Degrade it to a branch failure instead.
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					defer mu.Unlock()
					errs[s.Name()] = fmt.Errorf("branch panicked: %v", r)
				}
			}()

			branchCtx := ctx
			if g.branchTimeout > 0 {
				var cancel context.CancelFunc
				branchCtx, cancel = context.WithTimeout(ctx, g.branchTimeout)
				defer cancel()
			}

			delta, err := s.Run(branchCtx, state)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs[s.Name()] = err
			} else {
				results[s.Name()] = delta
			}
		}(step)
	}

	wg.Wait()

	return g.aggregate(state, results, errs)
}
