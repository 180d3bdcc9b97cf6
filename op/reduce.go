package op

import (
	"github.com/DeVictoria/compgraph/cgerr"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/reducer"
	"github.com/DeVictoria/compgraph/stream"
)

// reduceOp partitions its input into adjacent-equal groups on keys and
// invokes reducer once per group (spec.md §4.6). The stream MUST already
// be sorted on keys; Reduce assumes this rather than checking it (only
// Join is required to check, per spec.md §4.4).
type reduceOp struct {
	reducer reducer.Reducer
	keys    []string
}

// Reduce builds the Reduce operator for r, grouping on keys.
func Reduce(r reducer.Reducer, keys []string) Operation {
	return reduceOp{reducer: r, keys: keys}
}

func (o reduceOp) Call(in stream.RecordStream) (stream.RecordStream, error) {
	groups := stream.GroupBy(in, o.keys)
	var cur stream.RecordStream

	pull := func() (record.Record, bool, error) {
		for {
			if cur != nil {
				if cur.Next() {
					return cur.Record(), true, nil
				}
				if err := cur.Err(); err != nil {
					return nil, false, cgerr.WrapReducer(err)
				}
				cur = nil
			}
			_, group, ok := groups.Next()
			if !ok {
				return nil, false, groups.Err()
			}
			cur = o.reducer.Call(o.keys, group)
		}
	}
	return stream.New(pull, in.Close), nil
}
