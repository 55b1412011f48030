package storage

import (
	"context"
	"io"
)

// Storage abstracts the managed location holding a license-bearing archive.
// Implementations must be safe for concurrent use; atomicity of a full
// archive rewrite is the caller's responsibility (see pkg/container).
type Storage interface {
	// Open returns a reader over the blob at path. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Save replaces the blob at path with the reader's content.
	Save(ctx context.Context, path string, r io.Reader) error
	// Exists reports whether a blob is present at path.
	Exists(ctx context.Context, path string) bool
	// Delete removes the blob at path.
	Delete(ctx context.Context, path string) error
}
