package transform

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/DeVictoria/compgraph/connector"
)

// NewJSONDecoder constructs a Decoder for newline-delimited JSON: each
// line of the stream is one flat JSON object, decoded into an
// open-schema Extractor (field names come from the object's own keys,
// not a shared header, unlike csvDecoder's predecessor). This is the
// decoder op.FileSource plugs into the generic Decoder/Mapper/
// Transformer pipeline above.
func NewJSONDecoder() Decoder {
	return jsonDecoder{}
}

type jsonDecoder struct{}

func (jsonDecoder) Decode(ctx context.Context, rc connector.SrcAwareStreamer) (RecordIterator, error) {
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	it := &jsonRowIterator{scanner: scanner, srcAwareStream: rc}

	// Best-effort: close the underlying stream if the context is cancelled,
	// mirroring the predecessor CSV decoder's cancellation behavior.
	go func() {
		<-ctx.Done()
		_ = rc.Close()
	}()
	return it, nil
}

type jsonRowIterator struct {
	scanner        *bufio.Scanner
	srcAwareStream connector.SrcAwareStreamer

	current      mapExtractor
	decoderError error
}

func (it *jsonRowIterator) Next() bool {
	if it.decoderError != nil {
		return false
	}
	if !it.scanner.Scan() {
		if err := it.scanner.Err(); err != nil {
			it.decoderError = err
		}
		return false
	}

	var fields map[string]any
	if err := json.Unmarshal(it.scanner.Bytes(), &fields); err != nil {
		it.decoderError = fmt.Errorf("transform: invalid JSON line: %w", err)
		return false
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	it.current = mapExtractor{
		fields: fields,
		names:  names,
		meta:   it.srcAwareStream.Current(),
	}
	return true
}

func (it *jsonRowIterator) Record() Extractor { return it.current }
func (it *jsonRowIterator) Err() error        { return it.decoderError }
func (it *jsonRowIterator) Close() error      { return it.srcAwareStream.Close() }

// mapExtractor is a concrete Extractor backed by one decoded JSON object.
// names is sorted once per record so ByIndex/Names give a stable,
// reproducible field order despite map iteration being random.
type mapExtractor struct {
	fields map[string]any
	names  []string
	meta   connector.SrcMeta
}

func (e mapExtractor) ByIndex(i int) (any, bool) {
	if i < 0 || i >= len(e.names) {
		return nil, false
	}
	return e.fields[e.names[i]], true
}

func (e mapExtractor) ByName(name string) (any, bool) {
	v, ok := e.fields[name]
	return v, ok
}

func (e mapExtractor) Len() int                { return len(e.names) }
func (e mapExtractor) Names() []string         { return append([]string(nil), e.names...) }
func (e mapExtractor) Meta() connector.SrcMeta { return e.meta }
