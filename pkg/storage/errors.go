package storage

import "errors"

var (
	// Security and validation errors
	ErrInvalidPath   = errors.New("invalid path") // Prevents path traversal attacks
	ErrInvalidConfig = errors.New("invalid configuration")

	// Blob errors
	ErrNotFound    = errors.New("blob not found")
	ErrIsDirectory = errors.New("path is a directory")

	// I/O operation errors - wrapped with context for debugging
	ErrFailedToOpen   = errors.New("failed to open blob")
	ErrFailedToRead   = errors.New("failed to read blob")
	ErrFailedToWrite  = errors.New("failed to write blob")
	ErrFailedToDelete = errors.New("failed to delete blob")

	// S3-specific errors for proper error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")

	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
