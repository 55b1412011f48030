package container

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/readium/kotlin-toolkit-sub011/pkg/storage"
)

// StorageEntry holds the license document as one entry of an archive that
// lives in managed storage rather than at a raw filesystem path. The
// rewrite algorithm matches WritableEntry, with the temporary archive
// materialized in a private scratch file before being streamed back.
type StorageEntry struct {
	store     storage.Storage
	path      string
	entryPath string
}

// NewStorageEntry creates a container over the named entry of the archive
// stored under path in the given storage.
func NewStorageEntry(store storage.Storage, path, entryPath string) *StorageEntry {
	return &StorageEntry{store: store, path: path, entryPath: entryPath}
}

func (c *StorageEntry) Read(ctx context.Context) ([]byte, error) {
	archive, err := c.readArchive(ctx)
	if err != nil {
		return nil, err
	}

	entry := findEntry(archive, c.entryPath)
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

func (c *StorageEntry) Write(ctx context.Context, license []byte) error {
	archive, err := c.readArchive(ctx)
	if err != nil {
		// Failing to open the read stream is a write failure here.
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	scratch, err := os.CreateTemp("", "lcp-archive-*.zip")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	scratchPath := scratch.Name()
	defer os.Remove(scratchPath)

	err = rewriteArchive(archive, scratch, c.entryPath, license)
	if cerr := scratch.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	out, err := os.Open(scratchPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	defer out.Close()

	if err := c.store.Save(ctx, c.path, out); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (c *StorageEntry) readArchive(ctx context.Context) (*zip.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := c.store.Open(ctx, c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOpenFailed, c.path)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	return archive, nil
}
