package container

import (
	"bytes"
	"os"
	"strings"

	"github.com/readium/kotlin-toolkit-sub011/pkg/storage"
)

// Conventional license entry paths inside protected publications.
const (
	// EPUBLicenseEntryPath is where an LCP-protected EPUB stores its
	// license document.
	EPUBLicenseEntryPath = "META-INF/license.lcpl"
	// PackageLicenseEntryPath is where a Readium package (audiobook, PDF,
	// Divina) stores its license document.
	PackageLicenseEntryPath = "license.lcpl"
)

// Recognized outer media types.
const (
	MediaTypeEPUB            = "application/epub+zip"
	MediaTypeLCPAudiobook    = "application/audiobook+lcp"
	MediaTypeLCPPDF          = "application/pdf+lcp"
	MediaTypeReadiumWebPub   = "application/webpub+zip"
	MediaTypeReadiumDivina   = "application/divina+zip"
	MediaTypeLicenseDocument = "application/vnd.readium.lcp.license.v1.0+json"
)

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// ForLicenseDocument returns the container for a standalone license
// document file.
func ForLicenseDocument(path string) Container {
	return NewLicenseFile(path)
}

// ForPublication returns the writable container holding the license of the
// protected publication at path. The concrete backend is chosen by the
// outer media type; unrecognized types default to the generic Readium
// package layout. IsZIP is available to callers that want to verify the
// file really is an archive first.
func ForPublication(path, mediaType string) Container {
	switch normalizeMediaType(mediaType) {
	case MediaTypeEPUB:
		return NewWritableEntry(path, EPUBLicenseEntryPath)
	case MediaTypeLicenseDocument:
		return NewLicenseFile(path)
	case MediaTypeLCPAudiobook, MediaTypeLCPPDF, MediaTypeReadiumWebPub, MediaTypeReadiumDivina:
		return NewWritableEntry(path, PackageLicenseEntryPath)
	default:
		return NewWritableEntry(path, PackageLicenseEntryPath)
	}
}

// ForProtectedAsset returns a read-only container over the original
// publication asset, for callers that only need to extract the license.
func ForProtectedAsset(path, mediaType string) Container {
	if normalizeMediaType(mediaType) == MediaTypeEPUB {
		return NewPackageEntry(path, EPUBLicenseEntryPath)
	}
	return NewPackageEntry(path, PackageLicenseEntryPath)
}

// ForStoredPublication is ForPublication for archives living in managed
// storage rather than at a raw filesystem path.
func ForStoredPublication(store storage.Storage, path, mediaType string) Container {
	if normalizeMediaType(mediaType) == MediaTypeEPUB {
		return NewStorageEntry(store, path, EPUBLicenseEntryPath)
	}
	return NewStorageEntry(store, path, PackageLicenseEntryPath)
}

// IsZIP sniffs the file at path for a ZIP local-file-header signature.
func IsZIP(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, len(zipMagic))
	if _, err := f.Read(head); err != nil {
		return false
	}
	return bytes.Equal(head, zipMagic)
}

func normalizeMediaType(mediaType string) string {
	mediaType, _, _ = strings.Cut(mediaType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}
