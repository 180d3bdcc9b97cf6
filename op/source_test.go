package op

import (
	"errors"
	"testing"

	"github.com/DeVictoria/compgraph/cgerr"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

func Test_IterFactorySource_ResolvesBoundName(t *testing.T) {
	t.Parallel()

	inputs := NamedInputs{
		"docs": func() stream.RecordStream { return stream.FromSlice([]record.Record{{"id": 1}}) },
	}
	rs, err := IterFactorySource("docs").Open(inputs)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rows, err := stream.ToSlice(rs)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	if len(rows) != 1 || rows[0]["id"] != 1 {
		t.Fatalf("rows = %v", rows)
	}
}

func Test_IterFactorySource_MissingNameIsMissingNamedInput(t *testing.T) {
	t.Parallel()

	_, err := IterFactorySource("docs").Open(NamedInputs{})
	if !errors.Is(err, cgerr.ErrMissingNamedInput) {
		t.Fatalf("err = %v, want ErrMissingNamedInput", err)
	}
}

func Test_IterFactorySource_EachOpenCallsFreshFactory(t *testing.T) {
	t.Parallel()

	calls := 0
	inputs := NamedInputs{
		"docs": func() stream.RecordStream {
			calls++
			return stream.FromSlice(nil)
		},
	}
	src := IterFactorySource("docs")
	if _, err := src.Open(inputs); err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := src.Open(inputs); err != nil {
		t.Fatalf("second Open: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (one per Open, re-runnability)", calls)
	}
}

func Test_FileSource_UnmatchedGlobIsAnError(t *testing.T) {
	t.Parallel()

	_, err := FileSource("/no/such/directory/*.jsonl").Open(NamedInputs{})
	if err == nil {
		t.Fatalf("expected an error resolving a glob with no matches")
	}
}
