package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeVictoria/compgraph/joiner"
	"github.com/DeVictoria/compgraph/mapper"
	"github.com/DeVictoria/compgraph/op"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/reducer"
	"github.com/DeVictoria/compgraph/stream"
)

func rowsFactory(rows ...record.Record) op.InputFactory {
	return func() stream.RecordStream { return stream.FromSlice(append([]record.Record(nil), rows...)) }
}

func Test_Graph_MapThenReduce(t *testing.T) {
	t.Parallel()

	g := FromIter("words").
		Map(mapper.LowerCase{Column: "w"}).
		Reduce(reducer.Count{Column: "n"}, []string{"w"})

	inputs := op.NamedInputs{"words": rowsFactory(
		record.Record{"w": "A"},
		record.Record{"w": "a"},
		record.Record{"w": "B"},
	)}

	rs, err := g.Run(inputs)
	require.NoError(t, err)
	rows, err := stream.ToSlice(rs)
	require.NoError(t, err)

	total := 0
	for _, r := range rows {
		n, ok := record.ToFloat64(r["n"])
		require.True(t, ok, "row %v missing numeric n", r)
		total += int(n)
	}
	assert.Equal(t, 3, total, "rows = %v", rows)
}

func Test_Graph_IsReRunnable(t *testing.T) {
	t.Parallel()

	g := FromIter("src").Map(mapper.Dummy{})
	inputs := op.NamedInputs{"src": rowsFactory(record.Record{"v": 1}, record.Record{"v": 2})}

	for i := 0; i < 2; i++ {
		rs, err := g.Run(inputs)
		require.NoErrorf(t, err, "run %d", i)
		rows, err := stream.ToSlice(rs)
		require.NoErrorf(t, err, "run %d", i)
		assert.Lenf(t, rows, 2, "run %d should yield 2 rows both times", i)
	}
}

func Test_Graph_BuilderDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := FromIter("src")
	extended := base.Map(mapper.Dummy{})

	assert.Len(t, base.steps, 1, "extending a derived graph must not touch base.steps")
	assert.Len(t, extended.steps, 2, "extended graph should be base + one more step")
}

func Test_Graph_Join(t *testing.T) {
	t.Parallel()

	left := FromIter("left")
	right := FromIter("right")
	g := left.Join(joiner.InnerJoiner{}, right, []string{"k"})

	inputs := op.NamedInputs{
		"left":  rowsFactory(record.Record{"k": 1, "x": "a"}),
		"right": rowsFactory(record.Record{"k": 1, "y": "b"}),
	}
	rs, err := g.Run(inputs)
	require.NoError(t, err)
	rows, err := stream.ToSlice(rs)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, record.Record{"k": 1, "x": "a", "y": "b"}, rows[0])
}

func Test_Graph_MissingNamedInputSurfacesFromRun(t *testing.T) {
	t.Parallel()

	g := FromIter("missing")
	_, err := g.Run(op.NamedInputs{})
	assert.Error(t, err, "expected an error for an unbound named input")
}
