package container

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// WritableEntry holds the license document as one entry of a standalone
// license-bearing archive that the reader owns, so the entry may be
// replaced when the license is refreshed.
//
// Writes are transactional: every other entry is stream-copied raw into a
// fresh temporary archive, preserving its compression method, extra fields
// and comment, the new license bytes are written deflated under the entry
// name, and only then is the temporary archive swapped over the original.
// Any failure leaves the original archive untouched.
type WritableEntry struct {
	archive *PackageEntry
}

// NewWritableEntry creates a read-write container over the named entry of
// the ZIP archive at path.
func NewWritableEntry(path, entryPath string) *WritableEntry {
	return &WritableEntry{archive: NewPackageEntry(path, entryPath)}
}

func (c *WritableEntry) Read(ctx context.Context) ([]byte, error) {
	return c.archive.Read(ctx)
}

func (c *WritableEntry) Write(ctx context.Context, license []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := zip.OpenReader(c.archive.path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrWriteFailed, c.archive.path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.archive.path), filepath.Base(c.archive.path)+".*")
	if err != nil {
		_ = source.Close()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	tmpPath := tmp.Name()

	err = rewriteArchive(&source.Reader, tmp, c.archive.entryPath, license)
	_ = source.Close()
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := replaceFile(tmpPath, c.archive.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// rewriteArchive copies every entry of source except entryPath into w
// unchanged, then writes license under entryPath. The entry is created when
// the source archive does not contain it yet.
func rewriteArchive(source *zip.Reader, w io.Writer, entryPath string, license []byte) error {
	out := zip.NewWriter(w)

	for _, f := range source.File {
		if f.Name == entryPath {
			continue
		}
		// Raw copy preserves the original compression method, extra
		// fields and comment of the entry.
		if err := out.Copy(f); err != nil {
			return err
		}
	}

	header := &zip.FileHeader{
		Name:     entryPath,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	entry, err := out.CreateHeader(header)
	if err != nil {
		return err
	}
	if _, err := entry.Write(license); err != nil {
		return err
	}

	return out.Close()
}

// replaceFile swaps tmpPath over path. Rename is atomic on a single
// filesystem; when the rename is rejected (cross-volume temp dirs) it falls
// back to copying the fully formed temp file over the original.
func replaceFile(tmpPath, path string) error {
	if err := os.Rename(tmpPath, path); err == nil {
		return nil
	}

	src, err := os.Open(tmpPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Remove(tmpPath)
}
