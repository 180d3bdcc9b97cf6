package opener

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Opener is a single named, openable byte source: a file, an in-memory
// buffer, or (given a registered scheme) anything else RegisterOpener
// knows how to produce.
type Opener interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// File is an Opener implementation backed by a regular filesystem file.
// It stores the filesystem path and opens the file lazily: construction
// never touches the filesystem, only Open does.
type File struct {
	Path string
}

// NewFile constructs a File opener for a given filesystem path, cleaned
// with filepath.Clean. No existence or permission checks are performed
// until Open is called.
func NewFile(path string) File {
	return File{Path: filepath.Clean(path)}
}

// Open opens the underlying file. The context is checked before opening;
// os.Open itself is not context-cancellable once begun.
func (f File) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return os.Open(f.Path)
}

// Name returns the cleaned filesystem path, used as the source identity
// in connector.SrcMeta.
func (f File) Name() string { return f.Path }

func init() {
	// A bare path or file:// URI resolves to one-or-more File openers,
	// one per glob match.
	if err := RegisterOpener(schemeFile, RegularFileOpenerFactory); err != nil {
		panic(err)
	}
}
