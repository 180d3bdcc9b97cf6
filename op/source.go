package op

import (
	"context"

	"github.com/pkg/errors"

	"github.com/DeVictoria/compgraph/cgerr"
	"github.com/DeVictoria/compgraph/connector"
	"github.com/DeVictoria/compgraph/opener"
	"github.com/DeVictoria/compgraph/record"
	"github.com/DeVictoria/compgraph/stream"
	"github.com/DeVictoria/compgraph/transform"
)

// iterFactorySource looks up its name in the run's NamedInputs and
// streams whatever RecordStream the bound factory produces.
type iterFactorySource struct {
	name string
}

// IterFactorySource builds a Source that, on Open, resolves name against
// the NamedInputs passed to Graph.Run. This is how a graph's output can
// be re-run against fresh in-memory data (or chained from another
// already-run graph) without re-reading anything from disk.
func IterFactorySource(name string) Source {
	return iterFactorySource{name: name}
}

func (s iterFactorySource) Open(inputs NamedInputs) (stream.RecordStream, error) {
	factory, ok := inputs[s.name]
	if !ok {
		return nil, errors.Wrapf(cgerr.ErrMissingNamedInput, "no factory bound for input %q", s.name)
	}
	return factory(), nil
}

// fileSource reads one or more newline-delimited JSON files matching
// spec (a plain path, a glob, or a file:// URI — see opener.OpenerFromSpec)
// through the connector/transform pipeline: opener resolves the spec to
// one Opener per matched file, connector.NewMuxReader concatenates them
// into a single byte stream, and transform.NewJSONDecoder decodes that
// stream one record at a time.
type fileSource struct {
	spec string
}

// FileSource builds a Source that reads spec as newline-delimited JSON.
// Resolution (globbing, file:// URIs) and opening happen when Open is
// called, i.e. when the graph actually runs, not at graph-build time.
func FileSource(spec string) Source {
	return fileSource{spec: spec}
}

func (s fileSource) Open(_ NamedInputs) (stream.RecordStream, error) {
	openers, err := opener.OpenerFromSpec(s.spec)
	if err != nil {
		return nil, errors.Wrapf(err, "compgraph: resolve source %q", s.spec)
	}

	ctx, cancel := context.WithCancel(context.Background())
	mux := connector.NewMuxReader(ctx, openers)

	transformer := transform.NewDecodeMapTransform[record.Record](transform.NewJSONDecoder())
	it, err := transformer.Transform(ctx, mux, recordFromExtractor)
	if err != nil {
		cancel()
		_ = mux.Close()
		return nil, errors.Wrapf(err, "compgraph: decode %q", s.spec)
	}

	pull := func() (record.Record, bool, error) {
		if !it.Next() {
			return nil, false, it.Err()
		}
		return it.Struct(), true, nil
	}
	closeFn := func() error {
		err := it.Close()
		cancel()
		return err
	}
	return stream.New(pull, closeFn), nil
}

// recordFromExtractor is the transform.Mapper[record.Record] that turns
// one decoded JSON object into a Record, by copying every field the
// Extractor reports.
func recordFromExtractor(e transform.Extractor) (record.Record, error) {
	names := e.Names()
	rec := make(record.Record, len(names))
	for _, name := range names {
		v, _ := e.ByName(name)
		rec[name] = v
	}
	return rec, nil
}
