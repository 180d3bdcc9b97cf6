package op

import (
	"testing"

	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/reducer"
	"github.com/DeVictoria/compgraph/stream"
)

func Test_Reduce_GroupsAdjacentRunsByKeys(t *testing.T) {
	t.Parallel()

	in := stream.FromSlice([]record.Record{
		{"doc": "d1", "w": "a"},
		{"doc": "d1", "w": "b"},
		{"doc": "d2", "w": "c"},
	})
	out, err := Reduce(reducer.Count{Column: "n"}, []string{"doc"}).Call(in)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	rows, err := stream.ToSlice(out)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %v, want 2 groups", rows)
	}
	if rows[0]["doc"] != "d1" || rows[0]["n"] != 2 {
		t.Fatalf("rows[0] = %v", rows[0])
	}
	if rows[1]["doc"] != "d2" || rows[1]["n"] != 1 {
		t.Fatalf("rows[1] = %v", rows[1])
	}
}

func Test_Reduce_EmptyInputYieldsNoGroups(t *testing.T) {
	t.Parallel()

	in := stream.FromSlice(nil)
	out, err := Reduce(reducer.Count{Column: "n"}, []string{"doc"}).Call(in)
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
