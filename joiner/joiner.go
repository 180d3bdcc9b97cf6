// Package joiner implements the merge strategies used by its Join operator:
// inner, outer, left and right sort-merge joins with field-collision
// suffixing (spec.md §4.4), ported from
// _examples/original_source/compgraph/operations/join_op.py.
package joiner

import (
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

// Joiner combines one group from the left stream (already materialized,
// since a join strategy may need to scan it once per right-hand row)
// with one group from the right stream (still a lazy stream) that share
// the same join key. dup carries collision state across every group of
// a single Join invocation; callers must not share it across runs.
type Joiner interface {
	Call(keys []string, a []record.Record, b stream.RecordStream, dup *Duplicates) stream.RecordStream
}

// doJoin is the cross-product core shared by every non-empty-a case: for
// each row of b, pair it with every row of a, suffixing any field name
// that collides between the two sides. Must only be called with a
// non-empty a.
func doJoin(keys []string, a []record.Record, b stream.RecordStream, suffixA, suffixB string, dup *Duplicates) []record.Record {
	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}

	var out []record.Record
	for b.Next() {
		row1 := b.Record()

		base := row1.Clone()
		for k := range row1 {
			if dup.Has(k) {
				base[k+suffixB] = base[k]
			}
		}

		for _, row2 := range a {
			ans := base.Clone()
			for key := range row2 {
				if isKey[key] {
					continue
				}
				if _, present := ans[key]; present {
					dup.Mark(key)
				}
				if dup.Has(key) {
					ans[key+suffixB] = ans[key]
					delete(ans, key)
					ans[key+suffixA] = row2[key]
				} else {
					ans[key] = row2[key]
				}
			}
			out = append(out, ans)
		}
	}
	return out
}

// collectDuplicates renames every already-known-colliding field of each
// row with suffix (dropping the unsuffixed name), for the side of a join
// step that has no counterpart on the other side.
func collectDuplicates(rows []record.Record, suffix string, dup *Duplicates) []record.Record {
	out := make([]record.Record, 0, len(rows))
	for _, row := range rows {
		ans := row.Clone()
		for k := range row {
			if dup.Has(k) {
				ans[k+suffix] = ans[k]
				delete(ans, k)
			}
		}
		out = append(out, ans)
	}
	return out
}

func drain(rows stream.RecordStream) []record.Record {
	out, _ := stream.ToSlice(rows)
	return out
}

// InnerJoiner keeps only rows whose key is present on both sides.
type InnerJoiner struct {
	SuffixA, SuffixB string
}

func (j InnerJoiner) Call(keys []string, a []record.Record, b stream.RecordStream, dup *Duplicates) stream.RecordStream {
	if len(a) == 0 {
		drain(b)
		return stream.FromSlice(nil)
	}
	return stream.FromSlice(doJoin(keys, a, b, j.SuffixA, j.SuffixB, dup))
}

// OuterJoiner keeps every row from both sides, padding the missing side
// with nothing when a key appears on only one of them.
type OuterJoiner struct {
	SuffixA, SuffixB string
}

func (j OuterJoiner) Call(keys []string, a []record.Record, b stream.RecordStream, dup *Duplicates) stream.RecordStream {
	if len(a) == 0 {
		return stream.FromSlice(collectDuplicates(drain(b), j.SuffixB, dup))
	}
	bRows, bIsEmpty := tee(b)
	out := doJoin(keys, a, stream.FromSlice(bRows), j.SuffixA, j.SuffixB, dup)
	if bIsEmpty {
		out = append(out, collectDuplicates(a, j.SuffixA, dup)...)
	}
	return stream.FromSlice(out)
}

// LeftJoiner keeps every row of the left side, dropping unmatched rows
// of the right side.
type LeftJoiner struct {
	SuffixA, SuffixB string
}

func (j LeftJoiner) Call(keys []string, a []record.Record, b stream.RecordStream, dup *Duplicates) stream.RecordStream {
	if len(a) == 0 {
		drain(b)
		return stream.FromSlice(nil)
	}
	bRows, bIsEmpty := tee(b)
	out := doJoin(keys, a, stream.FromSlice(bRows), j.SuffixA, j.SuffixB, dup)
	if bIsEmpty {
		out = append(out, collectDuplicates(a, j.SuffixA, dup)...)
	}
	return stream.FromSlice(out)
}

// RightJoiner keeps every row of the right side, dropping unmatched rows
// of the left side.
type RightJoiner struct {
	SuffixA, SuffixB string
}

func (j RightJoiner) Call(keys []string, a []record.Record, b stream.RecordStream, dup *Duplicates) stream.RecordStream {
	if len(a) == 0 {
		return stream.FromSlice(collectDuplicates(drain(b), j.SuffixB, dup))
	}
	return stream.FromSlice(doJoin(keys, a, b, j.SuffixA, j.SuffixB, dup))
}

// tee materializes b into a slice and reports whether it was empty, so
// callers can both feed it to doJoin and decide on empty-side handling.
func tee(b stream.RecordStream) ([]record.Record, bool) {
	rows := drain(b)
	return rows, len(rows) == 0
}
