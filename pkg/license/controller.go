package license

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/readium/kotlin-toolkit-sub011/pkg/rights"
)

// License is the domain controller gating access to one protected
// publication. It always serves the latest validated snapshot pushed by the
// validation pipeline and drives rights consumption, loan renewal and loan
// return against the license status server.
//
// All operations are safe for concurrent use.
type License struct {
	validation  Validation
	rightsStore rights.Store
	device      *Device
	network     Network
	client      Decrypter
	log         *slog.Logger

	mu   sync.RWMutex
	docs ValidatedDocuments

	machine *loanMachine
}

// Option configures a License.
type Option func(*License)

// WithLogger sets the structured logger; slog.Default is used otherwise.
func WithLogger(log *slog.Logger) Option {
	return func(l *License) {
		if log != nil {
			l.log = log
		}
	}
}

var ErrMissingLicenseDocument = errors.New("missing license document")

// NewLicense creates a controller from an initial validated snapshot and
// registers its observer with the validation pipeline. The snapshot must
// carry a license document; the status document and decryption context may
// arrive later through the pipeline.
func NewLicense(
	docs ValidatedDocuments,
	validation Validation,
	rightsStore rights.Store,
	device *Device,
	network Network,
	client Decrypter,
	opts ...Option,
) (*License, error) {
	if docs.License == nil {
		return nil, ErrMissingLicenseDocument
	}

	l := &License{
		validation:  validation,
		rightsStore: rightsStore,
		device:      device,
		network:     network,
		client:      client,
		log:         slog.Default(),
		docs:        docs,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.machine = newLoanMachine(loanStateForStatus(docs.Status, docs.License.Rights.End), l.log)

	validation.Observe(func(next ValidatedDocuments) {
		if next.License == nil {
			return
		}
		l.mu.Lock()
		l.docs = next
		l.mu.Unlock()
		l.syncLoanState(next)
	})

	return l, nil
}

// LicenseDocument returns the current validated license document.
func (l *License) LicenseDocument() *Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.docs.License
}

// StatusDocument returns the current validated status document, nil when
// none was fetched yet.
func (l *License) StatusDocument() *StatusDocument {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.docs.Status
}

// LoanState returns the local loan lifecycle state.
func (l *License) LoanState() LoanState {
	return l.machine.Current()
}

func (l *License) snapshot() ValidatedDocuments {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.docs
}

// syncLoanState replays a validated snapshot onto the loan machine. Events
// the current state does not accept are normal here: the push may confirm a
// transition an operation already applied.
func (l *License) syncLoanState(docs ValidatedDocuments) {
	target := loanStateForStatus(docs.Status, docs.License.Rights.End)
	switch target.(type) {
	case LoanReturned:
		l.machine.Apply(eventReturnSucceeded{})
	case LoanExpired:
		l.machine.Apply(eventExpired{})
	case LoanActive:
		l.machine.Apply(eventRenewSucceeded{End: docs.License.Rights.End})
	}
}

// Decrypt decrypts one run of publication bytes using the current license
// context. Empty input short-circuits to empty output: the native primitive
// is documented to misbehave on it.
func (l *License) Decrypt(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []byte{}, nil
	}

	snapshot := l.snapshot()
	if snapshot.Context == nil {
		return nil, fmt.Errorf("%w: no decryption context", ErrDecryptionFailed)
	}

	decrypted, err := l.client.Decrypt(*snapshot.Context, data)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return decrypted, nil
}

// MaxRenewDate returns how far the server advertises the loan can be
// extended, nil when unknown.
func (l *License) MaxRenewDate() *time.Time {
	status := l.StatusDocument()
	if status == nil || status.PotentialRights == nil {
		return nil
	}
	return status.PotentialRights.End
}

// CanRenewLoan reports whether the status document exposes a renew link.
func (l *License) CanRenewLoan() bool {
	status := l.StatusDocument()
	return status != nil && status.Link(RelRenew) != nil
}

// CanReturnPublication reports whether the status document exposes a
// return link.
func (l *License) CanReturnPublication() bool {
	status := l.StatusDocument()
	return status != nil && status.Link(RelReturn) != nil
}
