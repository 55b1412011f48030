package container

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
)

// PackageEntry is the read-only archive-entry backend. It serves the
// license document out of a publication bundle, which is the original,
// immutable publication asset: Write always fails.
type PackageEntry struct {
	path      string
	entryPath string
}

// NewPackageEntry creates a read-only container over the named entry of the
// ZIP archive at path.
func NewPackageEntry(path, entryPath string) *PackageEntry {
	return &PackageEntry{path: path, entryPath: entryPath}
}

func (c *PackageEntry) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	archive, err := zip.OpenReader(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOpenFailed, c.path)
	}
	defer archive.Close()

	entry := findEntry(&archive.Reader, c.entryPath)
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, c.entryPath)
	}

	r, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	return data, nil
}

func (c *PackageEntry) Write(ctx context.Context, license []byte) error {
	return fmt.Errorf("%w: %s is read-only", ErrWriteFailed, c.path)
}

func findEntry(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}
