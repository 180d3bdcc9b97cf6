// Package op defines the Operation contract every graph stage implements,
// plus the Source variants and the Map/Reduce operators built on top of
// the mapper and reducer libraries.
package op

import (
	"github.com/DeVictoria/compgraph/stream"
)

// Operation is a unary stage: it consumes the upstream RecordStream and
// lazily produces a new one. Sources implement the separate Source
// interface instead.
// Operators must not eagerly consume more of their input than the next
// emitted record requires, except where the spec explicitly allows it.
type Operation interface {
	Call(in stream.RecordStream) (stream.RecordStream, error)
}

// BinaryOperation is the shape Join needs: a second RecordStream, sourced
// from running the join's side graph.
type BinaryOperation interface {
	Call(in, other stream.RecordStream) (stream.RecordStream, error)
}

// InputFactory is a zero-argument factory that, each time it is called,
// returns a fresh RecordStream over the same logical data. The factory
// form (rather than a bare stream) is what lets a graph be re-run
// (spec.md I1/P1): a stream carries cursor state, a factory doesn't.
type InputFactory func() stream.RecordStream

// NamedInputs binds source names (as referenced by IterFactorySource) to
// the factory the caller supplies for a single Run.
type NamedInputs map[string]InputFactory

// Source is the head of a graph: it has no upstream and is instead bound
// to NamedInputs at run time.
type Source interface {
	Open(inputs NamedInputs) (stream.RecordStream, error)
}
