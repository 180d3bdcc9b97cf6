package joiner

import (
	"github.com/pkg/errors"

	"github.com/DeVictoria/compgraph/cgerr"
	"github.com/DeVictoria/compgraph/op"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
)

// Join builds the sort-merge Join operator: j picks the strategy, keys
// names the join fields. Both input streams must already be sorted on
// keys in a consistent direction; a violation surfaces as ErrNotSorted.
func Join(j Joiner, keys []string) op.BinaryOperation {
	return joinOp{joiner: j, keys: keys}
}

type joinOp struct {
	joiner Joiner
	keys   []string
}

func (o joinOp) Call(in, other stream.RecordStream) (stream.RecordStream, error) {
	if other == nil {
		return nil, errors.WithStack(cgerr.ErrWrongJoinArgument)
	}

	m := &merger{
		left:   newSortedGroups(in, o.keys),
		right:  newSortedGroups(other, o.keys),
		joiner: o.joiner,
		keys:   o.keys,
		dup:    NewDuplicates(),
	}

	var buf []record.Record
	idx := 0

	pull := func() (record.Record, bool, error) {
		for idx >= len(buf) {
			rows, done, err := m.step()
			if err != nil {
				return nil, false, err
			}
			if done {
				return nil, false, nil
			}
			buf, idx = rows, 0
		}
		r := buf[idx]
		idx++
		return r, true, nil
	}

	closeFn := func() error {
		err1 := in.Close()
		err2 := other.Close()
		if err1 != nil {
			return err1
		}
		return err2
	}
	return stream.New(pull, closeFn), nil
}

// directionChecker infers the ascending/descending direction of a single
// side of a join from its first two distinct keys, then enforces it for
// every key seen afterwards (spec.md §4.4's sortedness check).
type directionChecker struct {
	have    bool
	prev    record.Key
	reverse *bool
}

func (c *directionChecker) check(key record.Key) error {
	if !c.have {
		c.have = true
		c.prev = key
		return nil
	}
	cmp := key.Compare(c.prev)
	if c.reverse == nil {
		if cmp != 0 {
			rev := cmp < 0
			c.reverse = &rev
		}
	} else if (*c.reverse && cmp > 0) || (!*c.reverse && cmp < 0) {
		return errors.WithStack(cgerr.ErrNotSorted)
	}
	c.prev = key
	return nil
}

// sortedGroups wraps stream.GroupBy with a directionChecker so that a
// side of a join fails fast on the first out-of-order group.
type sortedGroups struct {
	g   *stream.Groups
	chk directionChecker
}

func newSortedGroups(rs stream.RecordStream, keys []string) *sortedGroups {
	return &sortedGroups{g: stream.GroupBy(rs, keys)}
}

func (s *sortedGroups) next() (record.Key, stream.RecordStream, bool, error) {
	key, g, ok := s.g.Next()
	if !ok {
		return nil, nil, false, s.g.Err()
	}
	if err := s.chk.check(key); err != nil {
		return nil, nil, false, err
	}
	return key, g, true, nil
}

// merger holds the state of one sort-merge Join's advancing frontier: the
// current group on each side, whether each side is exhausted, and which
// side (if any) is "parked" — held back because it ran ahead of the
// other and must be reused, rather than re-pulled, next step.
type merger struct {
	left, right *sortedGroups
	joiner      Joiner
	keys        []string
	dup         *Duplicates

	k1, k2 record.Key
	g1, g2 stream.RecordStream
	done1  bool
	done2  bool
	parked int // 0 = none, 1 = left parked, 2 = right parked
}

// step advances the merge frontier by exactly one group-pair and returns
// the rows the configured Joiner produced for it. done is true once both
// sides are exhausted and there is no more output to produce.
func (m *merger) step() ([]record.Record, bool, error) {
	switch m.parked {
	case 1:
		if !m.done2 {
			if err := m.advanceRight(); err != nil {
				return nil, false, err
			}
		}
	case 2:
		if !m.done1 {
			if err := m.advanceLeft(); err != nil {
				return nil, false, err
			}
		}
	default:
		if !m.done1 {
			if err := m.advanceLeft(); err != nil {
				return nil, false, err
			}
		}
		if !m.done2 {
			if err := m.advanceRight(); err != nil {
				return nil, false, err
			}
		}
	}
	m.parked = 0

	switch {
	case m.done1 && m.done2:
		return nil, true, nil
	case m.done1:
		rows, err := m.join(nil, m.g2)
		return rows, false, err
	case m.done2:
		aRows, err := stream.ToSlice(m.g1)
		if err != nil {
			return nil, false, err
		}
		rows, err := m.join(aRows, stream.FromSlice(nil))
		return rows, false, err
	case m.k1.Equal(m.k2):
		aRows, err := stream.ToSlice(m.g1)
		if err != nil {
			return nil, false, err
		}
		rows, err := m.join(aRows, m.g2)
		return rows, false, err
	case m.k1.Compare(m.k2) < 0:
		aRows, err := stream.ToSlice(m.g1)
		if err != nil {
			return nil, false, err
		}
		rows, err := m.join(aRows, stream.FromSlice(nil))
		m.parked = 2
		return rows, false, err
	default:
		rows, err := m.join(nil, m.g2)
		m.parked = 1
		return rows, false, err
	}
}

func (m *merger) advanceLeft() error {
	k, g, ok, err := m.left.next()
	if err != nil {
		return err
	}
	if !ok {
		m.done1 = true
		return nil
	}
	m.k1, m.g1 = k, g
	return nil
}

func (m *merger) advanceRight() error {
	k, g, ok, err := m.right.next()
	if err != nil {
		return err
	}
	if !ok {
		m.done2 = true
		return nil
	}
	m.k2, m.g2 = k, g
	return nil
}

func (m *merger) join(a []record.Record, b stream.RecordStream) ([]record.Record, error) {
	res := m.joiner.Call(m.keys, a, b, m.dup)
	rows, err := stream.ToSlice(res)
	if err != nil {
		return nil, cgerr.WrapReducer(err)
	}
	return rows, nil
}
