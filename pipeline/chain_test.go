package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState struct {
	Trail []string
	Value int
}

type testDelta struct {
	Trail []string
	Value *int
}

func mergeTest(s testState, d testDelta) testState {
	if d.Trail != nil {
		s.Trail = d.Trail
	}
	if d.Value != nil {
		s.Value = *d.Value
	}
	return s
}

func appendStep(name string) Step[testState, testDelta] {
	return NewStep(name, func(ctx context.Context, s testState) (testDelta, error) {
		trail := append(append([]string{}, s.Trail...), name)
		return testDelta{Trail: trail}, nil
	})
}

func failingStep(name string, err error) Step[testState, testDelta] {
	return NewStep(name, func(ctx context.Context, s testState) (testDelta, error) {
		return testDelta{}, err
	})
}

func TestChainRunsInOrder(t *testing.T) {
	chain := NewChain("test", mergeTest,
		appendStep("first"),
		appendStep("second"),
		appendStep("third"),
	)

	final, err := chain.Run(context.Background(), testState{})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, final.Trail)
}

func TestChainMergePreservesAbsentFields(t *testing.T) {
	ten := 10
	chain := NewChain("test", mergeTest,
		NewStep("set-value", func(ctx context.Context, s testState) (testDelta, error) {
			return testDelta{Value: &ten}, nil
		}),
		appendStep("touch-trail"),
	)

	final, err := chain.Run(context.Background(), testState{Trail: []string{"seed"}})
	require.NoError(t, err)
	// The second step's delta carried no Value, so the first step's write survives.
	assert.Equal(t, 10, final.Value)
	assert.Equal(t, []string{"seed", "touch-trail"}, final.Trail)
}

func TestChainFailsFastWithoutHandler(t *testing.T) {
	boom := errors.New("boom")
	chain := NewChain("test", mergeTest,
		appendStep("first"),
		failingStep("broken", boom),
		appendStep("never"),
	)

	final, err := chain.Run(context.Background(), testState{})
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "broken", stepErr.StepName)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first"}, final.Trail)
}

func TestChainContinuesWithHandler(t *testing.T) {
	boom := errors.New("boom")
	chain := NewChain("test", mergeTest,
		appendStep("first"),
		failingStep("broken", boom),
		appendStep("after"),
	)

	handler := func(ctx context.Context, s testState, stepName string, err error) testState {
		s.Trail = append(append([]string{}, s.Trail...), fmt.Sprintf("recovered:%s", stepName))
		return s
	}

	final, err := chain.Run(context.Background(), testState{}, WithErrorHandler(handler))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "recovered:broken", "after"}, final.Trail)
}

func TestChainFailingStepLeavesStateUntouched(t *testing.T) {
	chain := NewChain("test", mergeTest,
		NewStep("half-done", func(ctx context.Context, s testState) (testDelta, error) {
			// A failing step's delta must be discarded.
			v := 99
			return testDelta{Value: &v}, errors.New("failed after computing")
		}),
	)

	final, err := chain.Run(context.Background(), testState{Value: 7},
		WithErrorHandler(func(ctx context.Context, s testState, name string, err error) testState {
			return s
		}))
	require.NoError(t, err)
	assert.Equal(t, 7, final.Value)
}

func TestChainHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ran := false
	chain := NewChain("test", mergeTest,
		NewStep("canceller", func(ctx context.Context, s testState) (testDelta, error) {
			cancel()
			return testDelta{}, nil
		}),
		NewStep("never", func(ctx context.Context, s testState) (testDelta, error) {
			ran = true
			return testDelta{}, nil
		}),
	)

	_, err := chain.Run(ctx, testState{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran, "steps after cancellation must not run")
}

func TestChainStepTimeout(t *testing.T) {
	chain := NewChain("test", mergeTest,
		NewStep("slow", func(ctx context.Context, s testState) (testDelta, error) {
			select {
			case <-ctx.Done():
				return testDelta{}, ctx.Err()
			case <-time.After(time.Second):
				return testDelta{}, nil
			}
		}),
	)

	_, err := chain.Run(context.Background(), testState{},
		WithStepTimeout[testState](5*time.Millisecond))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChainOnStepComplete(t *testing.T) {
	var seen []string
	chain := NewChain("test", mergeTest, appendStep("a"), appendStep("b"))

	_, err := chain.Run(context.Background(), testState{},
		WithOnStepComplete[testState](func(name string, elapsed time.Duration) {
			seen = append(seen, name)
			assert.GreaterOrEqual(t, elapsed, time.Duration(0))
		}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
}
