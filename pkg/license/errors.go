package license

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrLicenseInteractionNotAvailable means the status document exposes
	// no link for the requested interaction, or the interaction is not
	// permitted in the current loan state.
	ErrLicenseInteractionNotAvailable = errors.New("license interaction not available")

	ErrRenewFailed              = errors.New("publication could not be renewed properly")
	ErrReturnFailed             = errors.New("publication could not be returned properly")
	ErrAlreadyReturnedOrExpired = errors.New("publication has already been returned or is expired")
	ErrUnexpectedServerError    = errors.New("unexpected server error")
	ErrDecryptionFailed         = errors.New("unable to decrypt content")
)

// InvalidRenewalPeriodError is returned when the server rejects the
// requested renewal period. MaxRenewDate carries the last known upper bound
// of the rights window for display.
type InvalidRenewalPeriodError struct {
	MaxRenewDate *time.Time
}

func (e *InvalidRenewalPeriodError) Error() string {
	if e.MaxRenewDate == nil {
		return "incorrect renewal period"
	}
	return fmt.Sprintf("incorrect renewal period, loan cannot extend past %s", e.MaxRenewDate.Format(time.RFC3339))
}

// IsInvalidRenewalPeriodError reports whether err carries an invalid
// renewal period.
func IsInvalidRenewalPeriodError(err error) bool {
	var e *InvalidRenewalPeriodError
	return errors.As(err, &e)
}
