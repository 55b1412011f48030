package container

import (
	"context"
	"errors"
)

// Container reads and writes the serialized license document wherever it
// physically lives: a loose file, an entry inside a ZIP archive, or an
// archive held by managed storage. A container never owns the archive's
// bytes; each call reads or rewrites them transactionally.
type Container interface {
	// Read returns the raw license document bytes.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the license document with the given bytes.
	Write(ctx context.Context, license []byte) error
}

var (
	ErrOpenFailed    = errors.New("cannot open license container")
	ErrEntryNotFound = errors.New("license not found in container")
	ErrReadFailed    = errors.New("cannot read license from container")
	ErrWriteFailed   = errors.New("cannot write license in container")
)
