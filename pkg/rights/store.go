package rights

import (
	"context"
	"errors"
)

// Counter identifies one of the consumable rights tracked per license.
type Counter string

const (
	// CounterCopy counts characters the user may still copy.
	CounterCopy Counter = "copy"
	// CounterPrint counts pages the user may still print.
	CounterPrint Counter = "print"
)

// Store persists the remaining rights counters, keyed by license
// identifier. A nil value from Get means the license never restricted that
// right: callers treat it as unlimited and must not create a counter for it.
//
// The store is a best-effort local control, not a security boundary; two
// concurrent consumptions for the same license may under-enforce the quota
// by one request's worth. Authoritative enforcement is server side.
type Store interface {
	Get(ctx context.Context, licenseID string, counter Counter) (*int, error)
	Set(ctx context.Context, licenseID string, counter Counter, value int) error
}

var (
	ErrFailedToGetCounter = errors.New("failed to get rights counter")
	ErrFailedToSetCounter = errors.New("failed to set rights counter")
)
