// Package pipeline provides a small fixed-order workflow engine built on
// pure, delta-returning steps.
//
// A [Step] consumes the current state and returns a partial update; a
// [Chain] threads state through its steps in construction order, folding
// each delta into the running state with a single shared merge function.
// There is no branching: the topology is a straight line fixed at build
// time.
//
// A [Group] is a fan-out/fan-in combinator: it runs its branch steps
// concurrently against the same input state and folds the per-branch
// deltas (and failures) through an [Aggregator]. Because a Group is itself
// a Step, it slots directly into a Chain wherever independent lookups
// should run in parallel.
//
// Step failures never mutate state. A Chain configured with
// [WithErrorHandler] records the failure through the handler and continues
// with the next step; without a handler the chain fails fast with a
// [StepError].
package pipeline
