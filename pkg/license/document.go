package license

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Link relations used by the license document.
const (
	RelStatus      = "status"
	RelPublication = "publication"
	RelHint        = "hint"
)

var ErrInvalidDocument = errors.New("invalid license document")

// Rights is the usage window granted by a license. Nil Print and Copy mean
// the right is unrestricted; nil Start and End mean the license never
// expires on its own.
type Rights struct {
	Print *int       `json:"print,omitempty"`
	Copy  *int       `json:"copy,omitempty"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Encryption carries the subset of the license encryption block this core
// reads; the actual key material is handled by the native decrypt primitive.
type Encryption struct {
	Profile string `json:"profile"`
}

// Document is a validated LCP license document. The core reads only its
// identity, rights window and links; everything else stays with the
// validation pipeline that certified it.
type Document struct {
	ID         string     `json:"id"`
	Issued     time.Time  `json:"issued"`
	Updated    *time.Time `json:"updated,omitempty"`
	Provider   string     `json:"provider"`
	Encryption Encryption `json:"encryption"`
	Links      Links      `json:"links"`
	Rights     Rights     `json:"rights"`

	raw []byte
}

// ParseDocument decodes a license document from its canonical JSON form.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidDocument)
	}
	doc.raw = data
	return &doc, nil
}

// Raw returns the exact bytes the document was parsed from, suitable for
// writing back into a container.
func (d *Document) Raw() []byte {
	return d.raw
}

// Link returns the first link with the given relation, optionally
// restricted to a content type.
func (d *Document) Link(rel string, types ...string) *Link {
	return d.Links.Find(rel, types...)
}

// URL resolves the first link with the given relation, preferring the given
// content types; links with no declared type are accepted as a fallback.
func (d *Document) URL(rel string, preferredTypes ...string) (string, error) {
	link := d.Links.Find(rel, preferredTypes...)
	if link == nil {
		link = d.Links.FindWithNoType(rel)
	}
	if link == nil {
		return "", fmt.Errorf("%w: no %q link", ErrInvalidDocument, rel)
	}
	return link.URL(nil)
}
