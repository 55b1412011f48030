package license

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Link relations used by the status document.
const (
	RelLicense  = "license"
	RelRegister = "register"
	RelRenew    = "renew"
	RelReturn   = "return"
)

// Status is the server-side state of a loan.
type Status string

const (
	StatusReady     Status = "ready"
	StatusActive    Status = "active"
	StatusRevoked   Status = "revoked"
	StatusReturned  Status = "returned"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

var ErrInvalidStatusDocument = errors.New("invalid status document")

// StatusUpdated carries the timestamps of the last license and status
// changes on the server.
type StatusUpdated struct {
	License time.Time `json:"license"`
	Status  time.Time `json:"status"`
}

// PotentialRights advertises how far the rights window could be extended by
// a renewal.
type PotentialRights struct {
	End *time.Time `json:"end,omitempty"`
}

// Event is one entry of the server-side loan history.
type Event struct {
	Type      string    `json:"type"`
	Name      string    `json:"name,omitempty"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusDocument is a validated license status document. It describes the
// current server-side state of the loan and the interactions available from
// it.
type StatusDocument struct {
	ID              string           `json:"id"`
	Status          Status           `json:"status"`
	Message         string           `json:"message,omitempty"`
	Updated         *StatusUpdated   `json:"updated,omitempty"`
	Links           Links            `json:"links"`
	PotentialRights *PotentialRights `json:"potential_rights,omitempty"`
	Events          []Event          `json:"events,omitempty"`
}

// ParseStatusDocument decodes a status document from its JSON form.
func ParseStatusDocument(data []byte) (*StatusDocument, error) {
	var doc StatusDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatusDocument, err)
	}
	if doc.ID == "" || doc.Status == "" {
		return nil, fmt.Errorf("%w: missing id or status", ErrInvalidStatusDocument)
	}
	return &doc, nil
}

// Link returns the first link with the given relation, optionally
// restricted to a content type.
func (d *StatusDocument) Link(rel string, types ...string) *Link {
	return d.Links.Find(rel, types...)
}

// LinkWithNoType returns the first link with the given relation and no
// declared content type.
func (d *StatusDocument) LinkWithNoType(rel string) *Link {
	return d.Links.FindWithNoType(rel)
}

// URL resolves the first link with the given relation, expanding it with
// the given parameters.
func (d *StatusDocument) URL(rel string, params map[string]string, preferredTypes ...string) (string, error) {
	link := d.Links.Find(rel, preferredTypes...)
	if link == nil {
		link = d.Links.FindWithNoType(rel)
	}
	if link == nil && len(preferredTypes) > 0 {
		link = d.Links.Find(rel)
	}
	if link == nil {
		return "", fmt.Errorf("%w: no %q link", ErrInvalidStatusDocument, rel)
	}
	return link.URL(params)
}
