package algorithms

import (
	"testing"

	"github.com/DeVictoria/compgraph/op"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

func factory(rows ...record.Record) op.InputFactory {
	return func() stream.RecordStream { return stream.FromSlice(append([]record.Record(nil), rows...)) }
}

func runAll(t *testing.T, g interface {
	Run(op.NamedInputs) (stream.RecordStream, error)
}, inputs op.NamedInputs) []record.Record {
	t.Helper()
	rs, err := g.Run(inputs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rows, err := stream.ToSlice(rs)
	if err != nil {
		t.Fatalf("ToSlice: %v", err)
	}
	return rows
}

func Test_WordCount_CountsWordsAcrossRows(t *testing.T) {
	t.Parallel()

	g := WordCount("docs", "text", "count", false)
	inputs := op.NamedInputs{"docs": factory(
		record.Record{"text": "the cat sat on the mat"},
		record.Record{"text": "the dog sat"},
	)}

	rows := runAll(t, g, inputs)

	counts := map[string]int{}
	for _, r := range rows {
		n, _ := record.ToFloat64(r["count"])
		counts[r["text"].(string)] = int(n)
	}
	if counts["the"] != 3 {
		t.Fatalf("counts[\"the\"] = %d, want 3", counts["the"])
	}
	if counts["sat"] != 2 {
		t.Fatalf("counts[\"sat\"] = %d, want 2", counts["sat"])
	}
	if counts["cat"] != 1 {
		t.Fatalf("counts[\"cat\"] = %d, want 1", counts["cat"])
	}
}

func Test_InvertedIndex_TopWordsPerDocument(t *testing.T) {
	t.Parallel()

	g := InvertedIndex("docs", "doc_id", "text", "tf_idf", false)
	inputs := op.NamedInputs{"docs": factory(
		record.Record{"doc_id": "1", "text": "hello world"},
		record.Record{"doc_id": "2", "text": "hello there"},
	)}

	rows := runAll(t, g, inputs)
	if len(rows) == 0 {
		t.Fatalf("expected at least one tf-idf row")
	}
	for _, r := range rows {
		if _, ok := r["tf_idf"]; !ok {
			t.Fatalf("row %v missing tf_idf", r)
		}
	}
}

func Test_PMI_RanksWordsByPointwiseMutualInformation(t *testing.T) {
	t.Parallel()

	g := PMI("docs", "doc_id", "text", "pmi", false)
	inputs := op.NamedInputs{"docs": factory(
		record.Record{"doc_id": "1", "text": "anthropic anthropic model model testing"},
	)}

	rows := runAll(t, g, inputs)
	// Words must occur >= 2 times in the doc to survive the filter:
	// "anthropic" and "model" each appear twice, "testing" only once.
	for _, r := range rows {
		text := r["text"].(string)
		if text == "testing" {
			t.Fatalf("\"testing\" occurs once and should be filtered out: %v", rows)
		}
	}
}

func Test_YandexMaps_MeanSpeedPerWeekdayHour(t *testing.T) {
	t.Parallel()

	g := YandexMaps("times", "lengths",
		"enter_time", "leave_time", "edge_id", "start", "end",
		"weekday", "hour", "speed", false)

	inputs := op.NamedInputs{
		"times": factory(record.Record{
			"edge_id":    "e1",
			"enter_time": "20171129T080000",
			"leave_time": "20171129T083000",
		}),
		"lengths": factory(record.Record{
			"edge_id": "e1",
			"start":   []any{37.61, 55.74},
			"end":     []any{37.62, 55.75},
		}),
	}

	rows := runAll(t, g, inputs)
	if len(rows) != 1 {
		t.Fatalf("rows = %v, want one (weekday, hour) bucket", rows)
	}
	if _, ok := rows[0]["speed"]; !ok {
		t.Fatalf("row %v missing speed", rows[0])
	}
}
