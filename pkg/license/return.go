package license

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ReturnPublication gives the publication back before the end of the
// rights window, with a state-changing PUT request carrying the device
// identity and no body.
func (l *License) ReturnPublication(ctx context.Context) error {
	status := l.StatusDocument()
	if status == nil {
		return ErrLicenseInteractionNotAvailable
	}
	url, err := status.URL(RelReturn, l.device.AsQueryParameters())
	if err != nil {
		return ErrLicenseInteractionNotAvailable
	}

	tr := l.machine.Apply(eventReturnRequested{})
	if !tr.Valid {
		switch tr.FromState.(type) {
		case LoanReturned, LoanExpired:
			return ErrAlreadyReturnedOrExpired
		default:
			return ErrLicenseInteractionNotAvailable
		}
	}

	data, err := l.network.Fetch(ctx, url, MethodPut, nil)
	if err != nil {
		l.machine.Apply(eventReturnRejected{})
		return l.mapReturnError(err)
	}

	if err := l.validation.Validate(ctx, KindStatus, data); err != nil {
		l.machine.Apply(eventReturnRejected{})
		if isCancellation(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrReturnFailed, err)
	}

	l.machine.Apply(eventReturnSucceeded{})
	return nil
}

// The mapping differs from the renew path on purpose: here a forbidden
// response means the server already considers the loan over.
func (l *License) mapReturnError(err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusBadRequest:
			return ErrReturnFailed
		case http.StatusForbidden:
			return ErrAlreadyReturnedOrExpired
		default:
			return ErrUnexpectedServerError
		}
	}
	if isCancellation(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrReturnFailed, err)
}
