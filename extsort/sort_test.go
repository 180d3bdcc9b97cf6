package extsort

import (
	"errors"
	"testing"

	"github.com/DeVictoria/compgraph/cgerr"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

func Test_Sort_OrdersWholeStreamWhenGroupKeysNil(t *testing.T) {
	t.Parallel()

	in := stream.FromSlice([]record.Record{{"v": 3}, {"v": 1}, {"v": 2}})
	out, err := New([]string{"v"}, false, nil).Call(in)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	rows, err := stream.ToSlice(out)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(rows) != 3 || rows[0]["v"] != 1 || rows[1]["v"] != 2 || rows[2]["v"] != 3 {
		t.Fatalf("rows = %v", rows)
	}
}

func Test_Sort_Reverse(t *testing.T) {
	t.Parallel()

	in := stream.FromSlice([]record.Record{{"v": 1}, {"v": 3}, {"v": 2}})
	out, err := New([]string{"v"}, true, nil).Call(in)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	rows, err := stream.ToSlice(out)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if rows[0]["v"] != 3 || rows[1]["v"] != 2 || rows[2]["v"] != 1 {
		t.Fatalf("rows = %v, want descending", rows)
	}
}

func Test_Sort_SortsWithinEachGroupIndependently(t *testing.T) {
	t.Parallel()

	in := stream.FromSlice([]record.Record{
		{"g": "a", "v": 2}, {"g": "a", "v": 1},
		{"g": "b", "v": 4}, {"g": "b", "v": 3},
	})
	out, err := New([]string{"v"}, false, []string{"g"}).Call(in)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	rows, err := stream.ToSlice(out)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0]["v"] != 1 || rows[1]["v"] != 2 {
		t.Fatalf("group \"a\" not sorted: %v", rows[:2])
	}
	if rows[2]["v"] != 3 || rows[3]["v"] != 4 {
		t.Fatalf("group \"b\" not sorted: %v", rows[2:])
	}
}

func Test_Sort_EmptyInputYieldsEmptyOutput(t *testing.T) {
	t.Parallel()

	out, err := New([]string{"v"}, false, nil).Call(stream.FromSlice(nil))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	rows, err := stream.ToSlice(out)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %v, want none", rows)
	}
}

func Test_Sort_PropagatesUpstreamErrorAsSortWorkerSafe(t *testing.T) {
	t.Parallel()

	boom := errors.New("upstream boom")
	in := stream.New(func() (record.Record, bool, error) { return nil, false, boom }, nil)
	out, err := New([]string{"v"}, false, nil).Call(in)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	_, toErr := stream.ToSlice(out)
	if !errors.Is(toErr, boom) {
		t.Fatalf("err = %v, want upstream error propagated, not masked as %v", toErr, cgerr.ErrSortWorkerMismatch)
	}
}
