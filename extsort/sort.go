// Package extsort implements the Sort operator by delegating the actual
// sort to a sibling goroutine reached over a channel pair, so that the
// operator's own stack never holds more than one group's rows at once —
// the Go analogue of the source's Pipe-and-Process worker
// (_examples/original_source/compgraph/operations/external_sort_op.py).
package extsort

import (
	"github.com/DeVictoria/compgraph/op"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

// Sort builds the Sort operator. Rows are partitioned into adjacent
// groups by GroupKeys (spec.md §4.3); each group is sorted independently
// by Keys, in descending order when Reverse is set. A nil or empty
// GroupKeys treats the whole input as a single group.
type Sort struct {
	Keys      []string
	Reverse   bool
	GroupKeys []string
}

// New builds the Sort operator for the given configuration.
func New(keys []string, reverse bool, groupKeys []string) op.Operation {
	return Sort{Keys: keys, Reverse: reverse, GroupKeys: groupKeys}
}

func (s Sort) Call(in stream.RecordStream) (stream.RecordStream, error) {
	groups := stream.GroupBy(in, s.GroupKeys)
	var cur stream.RecordStream

	pull := func() (record.Record, bool, error) {
		for {
			if cur != nil {
				if cur.Next() {
					return cur.Record(), true, nil
				}
				if err := cur.Err(); err != nil {
					return nil, false, err
				}
				cur = nil
			}
			_, group, ok := groups.Next()
			if !ok {
				return nil, false, groups.Err()
			}
			sorted, err := sortGroup(group, s.Keys, s.Reverse)
			if err != nil {
				return nil, false, err
			}
			cur = sorted
		}
	}
	return stream.New(pull, in.Close), nil
}
