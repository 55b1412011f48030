// Package container reads and writes the serialized LCP license document
// from the places it may physically live, behind a single Container
// interface.
//
// Four backends share the interface: a loose license document file, a
// read-only entry inside the original publication bundle, a writable entry
// inside a standalone license-bearing archive, and the same writable entry
// when the archive lives in managed storage (pkg/storage) instead of on a
// raw filesystem path.
//
// Replacing an archive entry is all-or-nothing. The writable backends copy
// every other entry raw into a fresh temporary archive - keeping the
// original compression method, extra fields and comment of each entry -
// write the new license bytes deflated, and only then swap the temporary
// archive over the original with a rename (falling back to copy-then-delete
// when the filesystem rejects the rename). A crash at any point before the
// swap leaves the original archive fully readable and unchanged.
//
// ForLicenseDocument, ForPublication, ForStoredPublication and
// ForProtectedAsset pick the right backend for a path and outer media type.
package container
