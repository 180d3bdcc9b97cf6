// Package reducer provides the per-group Reducer strategy consumed by
// the Reduce operator, plus the library reducers spec.md §4.6 names.
package reducer

import (
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

// Reducer is invoked once per group with the group-key field NAMES (not
// their values — a reducer pulls the values it needs straight off any
// row in the group) and the group's rows, and returns a lazy sequence of
// output records.
type Reducer interface {
	Call(groupKeys []string, rows stream.RecordStream) stream.RecordStream
}

// keysFrom copies the group-key fields of row into a fresh Record, the
// common starting point for a reducer's single output row.
func keysFrom(row record.Record, groupKeys []string) record.Record {
	out := make(record.Record, len(groupKeys))
	for _, k := range groupKeys {
		out[k] = row[k]
	}
	return out
}
