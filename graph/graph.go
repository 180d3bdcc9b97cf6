// Package graph implements Graph, the immutable, re-runnable composition
// of operators described by spec.md §5, grounded on
// _examples/original_source/compgraph/graph.py. Each builder method
// returns a new Graph; the receiver is left untouched, so the same
// Graph value can be extended along more than one branch (spec.md P1,
// P7) the way the source's copy.deepcopy-per-call does.
package graph

import (
	"github.com/DeVictoria/compgraph/extsort"
	"github.com/DeVictoria/compgraph/joiner"
	"github.com/DeVictoria/compgraph/mapper"
	"github.com/DeVictoria/compgraph/op"
	"github.com/DeVictoria/compgraph/reducer"
	"github.com/DeVictoria/compgraph/stream"
)

// step is one stage of a Graph: exactly one of source, unary, or join is
// set, depending on the stage's position and kind.
type step struct {
	source op.Source
	unary  op.Operation
	join   op.BinaryOperation
	side   *Graph
}

// Graph is an ordered list of steps: a Source followed by zero or more
// unary operations and/or joins against a side Graph.
type Graph struct {
	steps []step
}

// FromIter builds a Graph whose source is the named entry of the
// NamedInputs passed to Run.
func FromIter(name string) *Graph {
	return &Graph{steps: []step{{source: op.IterFactorySource(name)}}}
}

// FromFile builds a Graph whose source reads newline-delimited JSON
// records from spec (a path, glob, or file:// URI).
func FromFile(spec string) *Graph {
	return &Graph{steps: []step{{source: op.FileSource(spec)}}}
}

// Map extends the graph with a Map operation.
func (g *Graph) Map(m mapper.Mapper) *Graph {
	return g.appendUnary(op.Map(m))
}

// Reduce extends the graph with a Reduce operation grouped on keys.
func (g *Graph) Reduce(r reducer.Reducer, keys []string) *Graph {
	return g.appendUnary(op.Reduce(r, keys))
}

// Sort extends the graph with a Sort operation, grouped by groupKeys
// (nil means the whole stream is one group) and ordered by keys.
func (g *Graph) Sort(keys []string, reverse bool, groupKeys []string) *Graph {
	return g.appendUnary(extsort.New(keys, reverse, groupKeys))
}

// Join extends the graph with a Join against side, using the given
// strategy and join keys. side is run fresh each time the resulting
// Graph is run, preserving re-runnability.
func (g *Graph) Join(j joiner.Joiner, side *Graph, keys []string) *Graph {
	steps := g.cloneSteps()
	steps = append(steps, step{join: joiner.Join(j, keys), side: side})
	return &Graph{steps: steps}
}

func (g *Graph) appendUnary(o op.Operation) *Graph {
	steps := g.cloneSteps()
	steps = append(steps, step{unary: o})
	return &Graph{steps: steps}
}

func (g *Graph) cloneSteps() []step {
	out := make([]step, len(g.steps), len(g.steps)+1)
	copy(out, g.steps)
	return out
}

// Run executes the graph against inputs, returning the resulting
// RecordStream. Every call to Run is independent: sources are (re-)opened
// and side graphs are (re-)run from scratch, so the same Graph value can
// be run any number of times (spec.md P1).
func (g *Graph) Run(inputs op.NamedInputs) (stream.RecordStream, error) {
	if len(g.steps) == 0 {
		return stream.FromSlice(nil), nil
	}

	cur, err := g.steps[0].source.Open(inputs)
	if err != nil {
		return nil, err
	}

	for _, st := range g.steps[1:] {
		if st.join != nil {
			sideStream, err := st.side.Run(inputs)
			if err != nil {
				return nil, err
			}
			cur, err = st.join.Call(cur, sideStream)
			if err != nil {
				return nil, err
			}
			continue
		}
		cur, err = st.unary.Call(cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}
