// Package mapper provides the per-record Mapper strategy consumed by the
// Map operator, plus the library mappers spec.md §4.5 names.
package mapper

import (
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

// Mapper is polymorphic over record -> lazy sequence of records. A
// Mapper may mutate the row it is given (the stream is single-consumer,
// so this is safe, per spec.md §5) or return a fresh one; the engine
// relies on neither.
type Mapper interface {
	Call(row record.Record) stream.RecordStream
}

// Func adapts a plain function into a Mapper.
type Func func(row record.Record) stream.RecordStream

// Call implements Mapper.
func (f Func) Call(row record.Record) stream.RecordStream { return f(row) }

// one returns a single-record RecordStream, the common case for mappers
// that rewrite a row without fanning it out.
func one(row record.Record) stream.RecordStream {
	return stream.FromSlice([]record.Record{row})
}

// Dummy yields exactly the row passed, unchanged.
type Dummy struct{}

func (Dummy) Call(row record.Record) stream.RecordStream { return one(row) }
