// Package storage provides byte-blob storage behind a single interface,
// with local filesystem and Amazon S3 backends.
//
// It backs the managed-storage license container (pkg/container), which
// needs to pull a whole archive down, rewrite it in a scratch area and
// stream the result back. The local backend confines every path to its base
// directory and replaces blobs through a rename so readers never observe a
// half-written file; the S3 backend classifies SDK failures into the
// package's sentinel errors.
package storage
