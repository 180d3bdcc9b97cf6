package op

import (
	"errors"
	"testing"

	"github.com/DeVictoria/compgraph/cgerr"
	"github.com/DeVictoria/compgraph/mapper"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

func Test_Map_FlattensEachCallResult(t *testing.T) {
	t.Parallel()

	in := stream.FromSlice([]record.Record{{"text": "a b"}, {"text": "c"}})
	out, err := Map(mapper.Split{Column: "text"}).Call(in)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	rows, err := stream.ToSlice(out)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %v, want 3 (split fans \"a b\" into two)", rows)
	}
}

type erroringMapper struct{ err error }

func (m erroringMapper) Call(row record.Record) stream.RecordStream {
	return stream.New(func() (record.Record, bool, error) { return nil, false, m.err }, nil)
}

func Test_Map_WrapsMapperErrorAsMapperEvaluation(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	in := stream.FromSlice([]record.Record{{"a": 1}})
	out, err := Map(erroringMapper{err: boom}).Call(in)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	_, toErr := stream.ToSlice(out)
	if !errors.Is(toErr, cgerr.ErrMapperEvaluation) {
		t.Fatalf("err = %v, want wrapped ErrMapperEvaluation", toErr)
	}
}

func Test_Map_ClosePropagatesToInput(t *testing.T) {
	t.Parallel()

	closed := false
	in := stream.New(func() (record.Record, bool, error) { return nil, false, nil }, func() error {
		closed = true
		return nil
	})
	out, err := Map(mapper.Dummy{}).Call(in)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !closed {
		t.Fatalf("expected Map's Close to propagate to its input stream")
	}
}
