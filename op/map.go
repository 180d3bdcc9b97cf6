package op

import (
	"github.com/DeVictoria/compgraph/cgerr"
	"github.com/DeVictoria/compgraph/mapper"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

// mapOp applies a Mapper to every incoming record, flattening each
// Mapper.Call result into the output stream.
type mapOp struct {
	mapper mapper.Mapper
}

// Map builds the Map operator for m.
func Map(m mapper.Mapper) Operation {
	return mapOp{mapper: m}
}

func (o mapOp) Call(in stream.RecordStream) (stream.RecordStream, error) {
	var cur stream.RecordStream

	pull := func() (record.Record, bool, error) {
		for {
			if cur != nil {
				if cur.Next() {
					return cur.Record(), true, nil
				}
				if err := cur.Err(); err != nil {
					return nil, false, cgerr.WrapMapper(err)
				}
				cur = nil
			}
			if !in.Next() {
				return nil, false, in.Err()
			}
			cur = o.mapper.Call(in.Record())
		}
	}
	return stream.New(pull, in.Close), nil
}
