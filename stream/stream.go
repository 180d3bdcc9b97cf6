// Package stream defines the RecordStream contract shared by every
// operator: a finite, single-pass, lazy sequence of record.Record values.
package stream

import "github.com/DeVictoria/compgraph/record"

// RecordStream is a forward-only iterator over record.Record values.
//
// The calling convention mirrors transform.RecordIterator in the wider
// codebase this engine descends from:
//
//	for rs.Next() {
//	    rec := rs.Record()
//	    // ...
//	}
//	if err := rs.Err(); err != nil {
//	    // handle
//	}
//
// Implementations must not advance past what the current call to Next
// strictly requires; an operator is lazy unless explicitly documented
// otherwise (external sort, per-group reduce, join side-A materialization).
type RecordStream interface {
	// Next advances to the next record and reports whether one is
	// available. It returns false on clean end-of-stream or on a terminal
	// error; callers must check Err to tell the two apart.
	Next() bool

	// Record returns the current record. Valid only after Next returned
	// true, and only until the next call to Next.
	Record() record.Record

	// Err returns the first non-EOF error encountered, or nil.
	Err() error

	// Close releases any resources held by the stream. Safe to call more
	// than once; safe to call before the stream is exhausted (this is how
	// callers cancel a pipeline mid-flight, per spec's cancellation model).
	Close() error
}

// funcStream adapts a pull closure into a RecordStream. pull returns the
// next record, an ok flag (false at end-of-stream), and an error. Once pull
// returns an error, the stream is done and that error sticks.
type funcStream struct {
	pull    func() (record.Record, bool, error)
	closeFn func() error

	cur  record.Record
	err  error
	done bool
}

// New builds a RecordStream from a pull closure and an optional close
// closure (nil is allowed when there is nothing to release).
func New(pull func() (record.Record, bool, error), closeFn func() error) RecordStream {
	return &funcStream{pull: pull, closeFn: closeFn}
}

func (f *funcStream) Next() bool {
	if f.done {
		return false
	}
	rec, ok, err := f.pull()
	if err != nil {
		f.err = err
		f.done = true
		return false
	}
	if !ok {
		f.done = true
		return false
	}
	f.cur = rec
	return true
}

func (f *funcStream) Record() record.Record { return f.cur }
func (f *funcStream) Err() error            { return f.err }

func (f *funcStream) Close() error {
	f.done = true
	if f.closeFn == nil {
		return nil
	}
	return f.closeFn()
}

// sliceStream is a RecordStream over a pre-materialized slice, used for
// in-memory sources, test fixtures, and the Join operator's side-A groups.
type sliceStream struct {
	rows []record.Record
	idx  int
	cur  record.Record
}

// FromSlice returns a RecordStream that yields rows in order.
// The slice is not copied; callers must not mutate it concurrently.
func FromSlice(rows []record.Record) RecordStream {
	return &sliceStream{rows: rows}
}

func (s *sliceStream) Next() bool {
	if s.idx >= len(s.rows) {
		return false
	}
	s.cur = s.rows[s.idx]
	s.idx++
	return true
}

func (s *sliceStream) Record() record.Record { return s.cur }
func (s *sliceStream) Err() error            { return nil }
func (s *sliceStream) Close() error          { return nil }

// ToSlice drains rs into a slice. It stops at the first error, which is
// returned alongside whatever records were already collected.
func ToSlice(rs RecordStream) ([]record.Record, error) {
	var out []record.Record
	for rs.Next() {
		out = append(out, rs.Record())
	}
	return out, rs.Err()
}
