package container

import (
	"context"
	"fmt"
	"os"
)

// LicenseFile is the loose-file backend: the license document is stored on
// its own, typically as a .lcpl file next to nothing else.
type LicenseFile struct {
	path string
}

// NewLicenseFile creates a container over a standalone license document file.
func NewLicenseFile(path string) *LicenseFile {
	return &LicenseFile{path: path}
}

func (c *LicenseFile) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrOpenFailed, c.path)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	return data, nil
}

func (c *LicenseFile) Write(ctx context.Context, license []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.WriteFile(c.path, license, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
