package license

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// RenewLoan extends the loan. Depending on prefersWebPage and the links the
// status document exposes, the renewal happens either programmatically with
// a PUT request or interactively through a web page presented by the
// listener. The caller-supplied end date is never applied speculatively: it
// only becomes visible through the re-validated documents. On success the
// new rights-window end date is returned.
func (l *License) RenewLoan(ctx context.Context, listener RenewListener, prefersWebPage bool) (*time.Time, error) {
	link := findRenewLink(l.StatusDocument(), prefersWebPage)
	if link == nil {
		return nil, ErrLicenseInteractionNotAvailable
	}

	tr := l.machine.Apply(eventRenewRequested{})
	if !tr.Valid {
		if _, ok := tr.FromState.(LoanReturned); ok {
			return nil, ErrAlreadyReturnedOrExpired
		}
		return nil, ErrLicenseInteractionNotAvailable
	}

	var (
		data []byte
		err  error
	)
	if link.IsHTML() {
		data, err = l.renewWithWebPage(ctx, listener, *link)
	} else {
		data, err = l.renewProgrammatically(ctx, listener, *link)
	}
	if err != nil {
		l.machine.Apply(eventRenewRejected{})
		return nil, l.mapRenewError(err)
	}

	if err := l.validation.Validate(ctx, KindStatus, data); err != nil {
		l.machine.Apply(eventRenewRejected{})
		if isCancellation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRenewFailed, err)
	}

	end := l.LicenseDocument().Rights.End
	l.machine.Apply(eventRenewSucceeded{End: end})
	return end, nil
}

// findRenewLink picks the renew link matching the interaction preference:
// an HTML page when the caller prefers one, the programmatic status-doc
// link otherwise, each falling back to the other, and finally to an
// untyped renew link assumed to accept a direct PUT.
func findRenewLink(status *StatusDocument, prefersWebPage bool) *Link {
	if status == nil {
		return nil
	}

	types := []string{MediaTypeHTML, MediaTypeXHTML}
	if prefersWebPage {
		types = append(types, MediaTypeStatusDocument)
	} else {
		types = append([]string{MediaTypeStatusDocument}, types...)
	}

	for _, t := range types {
		if link := status.Link(RelRenew, t); link != nil {
			return link
		}
	}
	return status.LinkWithNoType(RelRenew)
}

// renewProgrammatically issues the state-changing PUT request, asking the
// listener for a preferred end date when the link is parameterized with one.
func (l *License) renewProgrammatically(ctx context.Context, listener RenewListener, link Link) ([]byte, error) {
	params := l.device.AsQueryParameters()

	if link.HasTemplateParameter("end") {
		end, err := listener.PreferredEndDate(ctx, l.MaxRenewDate())
		if err != nil {
			return nil, err
		}
		if end != nil {
			params["end"] = end.UTC().Format(time.RFC3339)
		}
	}

	url, err := link.URL(params)
	if err != nil {
		return nil, ErrLicenseInteractionNotAvailable
	}
	return l.network.Fetch(ctx, url, MethodPut, nil)
}

// renewWithWebPage hands the renew page to the caller, then fetches the
// canonical status document: the interactive flow returns no structured
// data of its own.
func (l *License) renewWithWebPage(ctx context.Context, listener RenewListener, link Link) ([]byte, error) {
	pageURL, err := link.URL(nil)
	if err != nil {
		return nil, ErrLicenseInteractionNotAvailable
	}
	if err := listener.OpenWebPage(ctx, pageURL); err != nil {
		return nil, err
	}

	statusURL, err := l.LicenseDocument().URL(RelStatus, MediaTypeStatusDocument)
	if err != nil {
		return nil, ErrLicenseInteractionNotAvailable
	}
	return l.network.Fetch(ctx, statusURL, MethodGet, map[string]string{
		"Accept": MediaTypeStatusDocument,
	})
}

func (l *License) mapRenewError(err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusBadRequest:
			return ErrRenewFailed
		case http.StatusForbidden:
			return &InvalidRenewalPeriodError{MaxRenewDate: l.MaxRenewDate()}
		default:
			return ErrUnexpectedServerError
		}
	}
	if isCancellation(err) || errors.Is(err, ErrLicenseInteractionNotAvailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrRenewFailed, err)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
