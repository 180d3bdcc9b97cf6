package joiner

// Duplicates tracks which non-key field names have been observed on both
// sides of a single Join invocation. Once a field is marked, every
// subsequent record carrying it is suffix-disambiguated too — collisions
// are sticky for the lifetime of the operation (spec.md §4.4).
//
// A Duplicates value is created fresh per Join operator Call, never
// shared across graph runs — see SPEC_FULL.md's "joiner reuse" decision.
type Duplicates struct {
	seen map[string]bool
}

// NewDuplicates returns an empty Duplicates set.
func NewDuplicates() *Duplicates {
	return &Duplicates{seen: make(map[string]bool)}
}

// Mark records name as a known collision.
func (d *Duplicates) Mark(name string) { d.seen[name] = true }

// Has reports whether name has been observed as colliding so far.
func (d *Duplicates) Has(name string) bool { return d.seen[name] }
