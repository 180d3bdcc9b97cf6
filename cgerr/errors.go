// Package cgerr collects the sentinel errors defined by spec.md §7, so
// that every operator package can wrap the same identity with
// github.com/pkg/errors and callers can test for it with errors.Is
// regardless of which operator raised it.
package cgerr

import "errors"

var (
	// ErrWrongJoinArgument is returned when Join is invoked without a
	// second stream, or when the supplied second argument is nil.
	ErrWrongJoinArgument = errors.New("compgraph: wrong join argument")

	// ErrNotSorted is returned when a join-side input violates the key
	// direction (ascending/descending) inferred from its first two
	// distinct keys.
	ErrNotSorted = errors.New("compgraph: join input is not sorted by its keys")

	// ErrSortWorkerMismatch is returned when the external-sort sibling
	// worker echoes back a different number of records than it was sent.
	ErrSortWorkerMismatch = errors.New("compgraph: sort worker returned a different row count than it received")

	// ErrMissingNamedInput is returned when Graph.Run is invoked without
	// a factory for a name a Source in the graph (or any side graph)
	// requires.
	ErrMissingNamedInput = errors.New("compgraph: missing named input")

	// ErrMapperEvaluation wraps any error surfaced by a user-supplied
	// Mapper.
	ErrMapperEvaluation = errors.New("compgraph: mapper evaluation failed")

	// ErrReducerEvaluation wraps any error surfaced by a user-supplied
	// Reducer or Joiner.
	ErrReducerEvaluation = errors.New("compgraph: reducer evaluation failed")
)

// wrapped pairs a sentinel identity (for errors.Is) with the underlying
// cause (for errors.As / Unwrap and the original message).
type wrapped struct {
	sentinel error
	cause    error
}

func (w *wrapped) Error() string { return w.sentinel.Error() + ": " + w.cause.Error() }
func (w *wrapped) Unwrap() error { return w.cause }
func (w *wrapped) Is(target error) bool {
	return target == w.sentinel
}

// WrapMapper reports err as an ErrMapperEvaluation while preserving err
// for errors.As/Unwrap.
func WrapMapper(err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{sentinel: ErrMapperEvaluation, cause: err}
}

// WrapReducer reports err as an ErrReducerEvaluation while preserving
// err for errors.As/Unwrap. Used by both the Reduce operator and Join's
// joiner invocations (spec.md §7 groups the two under one error kind).
func WrapReducer(err error) error {
	if err == nil {
		return nil
	}
	return &wrapped{sentinel: ErrReducerEvaluation, cause: err}
}
