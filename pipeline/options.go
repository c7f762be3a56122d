package pipeline

import (
	"context"
	"time"
)

// ErrorHandler is called when a step fails. It receives the running state
// (untouched by the failing step) and returns the state the chain should
// continue with, typically with the failure recorded as data.
type ErrorHandler[S any] func(ctx context.Context, state S, stepName string, err error) S

// Options contains configuration for chain execution.
type Options[S any] struct {
	// Timeout sets a deadline for the entire chain.
	Timeout time.Duration

	// StepTimeout sets a timeout applied to each individual step.
	StepTimeout time.Duration

	// ErrorHandler, when set, makes the chain continue after a step
	// failure with the handler's returned state. When nil, the chain
	// fails fast with a StepError.
	ErrorHandler ErrorHandler[S]

	// OnStepComplete is called after each successful step with the step
	// name and its elapsed wall-clock time.
	OnStepComplete func(stepName string, elapsed time.Duration)
}

// Option is a functional option for chain execution.
type Option[S any] func(*Options[S])

// WithTimeout sets the overall chain timeout.
func WithTimeout[S any](d time.Duration) Option[S] {
	return func(o *Options[S]) {
		o.Timeout = d
	}
}

// WithStepTimeout sets the timeout for each step.
func WithStepTimeout[S any](d time.Duration) Option[S] {
	return func(o *Options[S]) {
		o.StepTimeout = d
	}
}

// WithErrorHandler sets the handler invoked on step failures.
func WithErrorHandler[S any](fn ErrorHandler[S]) Option[S] {
	return func(o *Options[S]) {
		o.ErrorHandler = fn
	}
}

// WithOnStepComplete sets a callback observing successful steps.
func WithOnStepComplete[S any](fn func(stepName string, elapsed time.Duration)) Option[S] {
	return func(o *Options[S]) {
		o.OnStepComplete = fn
	}
}

// ApplyOptions applies functional options with defaults.
func ApplyOptions[S any](opts ...Option[S]) *Options[S] {
	o := &Options[S]{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
