package license

import (
	"context"
	"time"
)

// DocumentKind tags the raw bytes handed to the validation pipeline.
type DocumentKind string

const (
	KindLicense DocumentKind = "license"
	KindStatus  DocumentKind = "status"
)

// DRMContext is the opaque decryption context derived from a validated
// license, passed through to the native decrypt primitive.
type DRMContext struct {
	HashedPassphrase    string
	EncryptedContentKey string
	Token               string
	Profile             string
}

// ValidatedDocuments is one consistent snapshot produced by the validation
// pipeline: a certified license document, the matching status document when
// one was fetched, and the decryption context when the passphrase was
// resolved.
type ValidatedDocuments struct {
	License *Document
	Status  *StatusDocument
	Context *DRMContext
}

// Validation is the external pipeline that cryptographically and temporally
// certifies license and status documents. This core feeds it raw bytes and
// receives validated snapshots through the observer; it never validates
// anything itself.
type Validation interface {
	// Validate feeds raw document bytes into the pipeline. A successful
	// validation eventually reaches the observers with a new snapshot.
	Validate(ctx context.Context, kind DocumentKind, data []byte) error
	// Observe registers an observer pushed every new validated snapshot.
	// The License controller registers exactly one for its lifetime.
	Observe(fn func(ValidatedDocuments))
}

// Decrypter is the opaque native primitive that decrypts publication
// resources with a license-derived context.
type Decrypter interface {
	Decrypt(drmContext DRMContext, data []byte) ([]byte, error)
}

// RenewListener lets the caller take part in a loan renewal: choose the new
// end date for parameterized renew links, and present interactive renew
// pages outside this core.
type RenewListener interface {
	// PreferredEndDate asks for the wanted end date, bounded by
	// maxRenewDate when the server advertised one. Returning nil lets the
	// server pick.
	PreferredEndDate(ctx context.Context, maxRenewDate *time.Time) (*time.Time, error)
	// OpenWebPage presents the renew page to the user and returns once it
	// was dismissed.
	OpenWebPage(ctx context.Context, url string) error
}
