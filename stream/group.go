package stream

import "github.com/DeVictoria/compgraph/record"

// Groups splits a RecordStream into maximal contiguous runs of records
// sharing the same Key over a fixed set of fields — the adjacency-based
// Group from spec.md §3. The stream MUST already be sorted on those
// fields; Groups only detects adjacency, it never re-sorts.
type Groups struct {
	rs   RecordStream
	keys []string

	pending    *record.Record
	pendingKey record.Key

	done bool
	err  error
	cur  *groupStream
}

// GroupBy returns a Groups walker over rs, partitioned by keys.
func GroupBy(rs RecordStream, keys []string) *Groups {
	return &Groups{rs: rs, keys: keys}
}

// Next advances to the next group, first draining whatever remains of
// the previous one (mirroring Python itertools.groupby's behavior when
// the outer iterator advances before the inner one is exhausted). It
// returns false once the underlying stream is exhausted or has errored;
// callers must check Err afterwards.
func (g *Groups) Next() (record.Key, RecordStream, bool) {
	if g.cur != nil {
		g.cur.drain()
		g.cur = nil
	}
	if g.done {
		return nil, nil, false
	}

	var key record.Key
	var first record.Record
	if g.pending != nil {
		first = *g.pending
		key = g.pendingKey
		g.pending = nil
	} else {
		if !g.rs.Next() {
			g.err = g.rs.Err()
			g.done = true
			return nil, nil, false
		}
		first = g.rs.Record()
		key = record.KeyOf(first, g.keys)
	}

	gs := &groupStream{parent: g, key: key, first: first}
	g.cur = gs
	return key, gs, true
}

// Err reports the first error seen from the underlying stream.
func (g *Groups) Err() error { return g.err }

// groupStream streams the records of a single group, transparently
// pulling from the parent's underlying stream and stashing the first
// out-of-group record it sees as the parent's next pending group.
type groupStream struct {
	parent *Groups
	key    record.Key
	first  record.Record

	firstServed bool
	cur         record.Record
	done        bool
}

func (gs *groupStream) Next() bool {
	if gs.done {
		return false
	}
	if !gs.firstServed {
		gs.firstServed = true
		gs.cur = gs.first
		return true
	}
	if !gs.parent.rs.Next() {
		gs.done = true
		gs.parent.done = true
		gs.parent.err = gs.parent.rs.Err()
		return false
	}
	rec := gs.parent.rs.Record()
	key := record.KeyOf(rec, gs.parent.keys)
	if !key.Equal(gs.key) {
		gs.parent.pending = &rec
		gs.parent.pendingKey = key
		gs.done = true
		return false
	}
	gs.cur = rec
	return true
}

func (gs *groupStream) Record() record.Record { return gs.cur }
func (gs *groupStream) Err() error            { return gs.parent.err }
func (gs *groupStream) Close() error          { return nil }

func (gs *groupStream) drain() {
	for gs.Next() {
	}
}
