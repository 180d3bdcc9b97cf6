// Package record defines Record, the open-schema name→value map that is
// the universal currency flowing through every operator, plus the
// lexicographic sort-key comparison the Sort and Join operators rely on.
package record

import (
	"fmt"
	"sort"
)

// Record is an unordered mapping from field name to a dynamically-typed
// value. The field set is open: no declared schema, no fixed type per
// field across records. Values are typically int, float64, string, or a
// []float64 (an ordered coordinate pair or similar numeric list).
type Record map[string]any

// Clone returns a shallow copy of r. Mappers may rewrite a record in
// place or emit a fresh one (§4.5); Clone is the building block for "emit
// a fresh one" without aliasing the original's backing map.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Key is an ordered tuple of field values, taken from a Record according
// to a fixed sequence of field names. Two records belong to the same
// group iff their Keys for the group-key fields are Equal.
type Key []any

// KeyOf extracts the ordered values of fields from r as a Key.
// A missing field yields a nil entry; callers supplying keys that aren't
// present in every record will get inconsistent groupings, which mirrors
// the source's behavior of letting a Python KeyError propagate — except
// here nils compare so records with the same (spurious) hole still group.
func KeyOf(r Record, fields []string) Key {
	k := make(Key, len(fields))
	for i, f := range fields {
		k[i] = r[f]
	}
	return k
}

// Equal reports whether two keys carry the same values in the same
// positions.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if Compare(k[i], other[i]) != 0 {
			return false
		}
	}
	return true
}

// Compare orders two Keys lexicographically over Compare(field) results,
// field by field, stopping at the first non-zero comparison.
func (k Key) Compare(other Key) int {
	n := len(k)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if c := Compare(k[i], other[i]); c != 0 {
			return c
		}
	}
	return len(k) - len(other)
}

// Compare orders two scalar field values. The engine does not coerce
// across genuinely different representations (a string never compares
// against a []float64), but numeric values are widened to float64 so
// that int- and float64-typed fields — which is exactly what happens
// when the same logical column arrives once from a Go literal (int) and
// once from encoding/json (float64) — still compare correctly.
//
// Returns -1, 0, or 1. Incomparable operand types panic: per spec.md
// §3, "values within a single key field are assumed mutually
// comparable"; a mismatch here indicates a caller error, not a data
// condition to recover from.
func Compare(a, b any) int {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if as, aok := a.(string); aok {
		if bs, bok := b.(string); bok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	}
	if a == nil && b == nil {
		return 0
	}
	panic(fmt.Sprintf("record: incomparable key values %#v and %#v", a, b))
}

// ToFloat64 widens any of Go's common numeric kinds to float64. It is
// exported for mappers/reducers that need arithmetic on an open-schema
// field (Product, Sum, Haversine, ...) without hand-rolling the same
// type switch everywhere.
func ToFloat64(v any) (float64, bool) {
	return asFloat(v)
}

// asFloat widens the common Go numeric kinds to float64 for comparison.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// SortByKeys sorts rows in place by the named fields, in the given
// direction. It is a stable sort: ties preserve arrival order, which is
// what makes TopN's tie-break rule (P4) and similar "ties keep arrival
// order" invariants meaningful downstream.
func SortByKeys(rows []Record, keys []string, reverse bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		c := KeyOf(rows[i], keys).Compare(KeyOf(rows[j], keys))
		if reverse {
			return c > 0
		}
		return c < 0
	})
}
