package reducer

import (
	"container/heap"

	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

// First yields only the first row of each group.
type First struct{}

func (First) Call(_ []string, rows stream.RecordStream) stream.RecordStream {
	var out []record.Record
	if rows.Next() {
		out = append(out, rows.Record())
	}
	return stream.FromSlice(out)
}

// Count yields one row per group holding the group-key fields plus
// Column = the number of rows in the group.
type Count struct {
	Column string
}

func (r Count) Call(groupKeys []string, rows stream.RecordStream) stream.RecordStream {
	count := 0
	var last record.Record
	for rows.Next() {
		count++
		last = rows.Record()
	}
	out := keysFrom(last, groupKeys)
	out[r.Column] = count
	return stream.FromSlice([]record.Record{out})
}

// Sum yields one row per group holding the group-key fields plus
// Column = the sum of row[Column] across the group.
type Sum struct {
	Column string
}

func (r Sum) Call(groupKeys []string, rows stream.RecordStream) stream.RecordStream {
	var total float64
	var last record.Record
	for rows.Next() {
		last = rows.Record()
		v, _ := record.ToFloat64(last[r.Column])
		total += v
	}
	out := keysFrom(last, groupKeys)
	out[r.Column] = total
	return stream.FromSlice([]record.Record{out})
}

// TopN yields the n rows of the group with the largest Column value,
// ties broken by earlier arrival (spec.md P4). Implemented with an
// n-sized min-heap keyed by (value, arrival-index), the direct analogue
// of the source's heapq-based approach.
type TopN struct {
	Column string
	N      int
}

type topNEntry struct {
	value   float64
	arrival int
	row     record.Record
}

type topNHeap []topNEntry

func (h topNHeap) Len() int { return len(h) }
func (h topNHeap) Less(i, j int) bool {
	if h[i].value != h[j].value {
		return h[i].value < h[j].value
	}
	// On equal values the later arrival is the smaller entry, so it is
	// popped first and the earlier arrival is kept.
	return h[i].arrival > h[j].arrival
}
func (h topNHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *topNHeap) Push(x interface{}) { *h = append(*h, x.(topNEntry)) }
func (h *topNHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

func (r TopN) Call(_ []string, rows stream.RecordStream) stream.RecordStream {
	h := &topNHeap{}
	heap.Init(h)
	arrival := 0
	for rows.Next() {
		row := rows.Record()
		v, _ := record.ToFloat64(row[r.Column])
		heap.Push(h, topNEntry{value: v, arrival: arrival, row: row})
		arrival++
		if h.Len() > r.N {
			heap.Pop(h)
		}
	}
	out := make([]record.Record, h.Len())
	for i, e := range *h {
		out[i] = e.row
	}
	return stream.FromSlice(out)
}

// TermFrequency counts occurrences of each distinct value of WordsColumn
// within the group, then emits one row per distinct value with the
// group-key fields, the value itself, and its frequency (count / group
// size). Emission order is first-appearance order within the group
// (spec.md §4.6, P5).
type TermFrequency struct {
	WordsColumn  string
	ResultColumn string
}

func (r TermFrequency) Call(groupKeys []string, rows stream.RecordStream) stream.RecordStream {
	counts := make(map[any]int)
	var order []any
	firstRow := make(map[any]record.Record)
	total := 0

	for rows.Next() {
		row := rows.Record()
		total++
		w := row[r.WordsColumn]
		if counts[w] == 0 {
			order = append(order, w)
			firstRow[w] = row
		}
		counts[w]++
	}

	out := make([]record.Record, 0, len(order))
	for _, w := range order {
		rec := keysFrom(firstRow[w], groupKeys)
		rec[r.WordsColumn] = w
		rec[r.ResultColumn] = float64(counts[w]) / float64(total)
		out = append(out, rec)
	}
	return stream.FromSlice(out)
}

// MeanSpeed yields one row per group holding the group-key fields plus
// Result = sum(Distance) / sum(Time) across the group.
type MeanSpeed struct {
	Result, Distance, Time string
}

func (r MeanSpeed) Call(groupKeys []string, rows stream.RecordStream) stream.RecordStream {
	var sumDistance, sumTime float64
	var last record.Record
	for rows.Next() {
		last = rows.Record()
		d, _ := record.ToFloat64(last[r.Distance])
		t, _ := record.ToFloat64(last[r.Time])
		sumDistance += d
		sumTime += t
	}
	out := keysFrom(last, groupKeys)
	out[r.Result] = sumDistance / sumTime
	return stream.FromSlice([]record.Record{out})
}
