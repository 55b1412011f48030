// Package license implements the client side of the LCP license protocol:
// a controller that serves validated license and status documents, gates
// copy and print consumption against local rights counters, decrypts
// publication content through an opaque native primitive, and drives loan
// renewal and return against the license status server.
//
// # Architecture
//
// The controller never validates documents itself. It is constructed from
// an initial snapshot produced by an external Validation pipeline and
// registers an observer with it; every later snapshot the pipeline pushes
// atomically replaces the served documents. State-changing interactions
// (renew, return) send their server response back through the same
// pipeline, so a successful interaction is only ever observed through a
// new validated snapshot.
//
// # Loan lifecycle
//
// A local state machine mirrors the loan lifecycle (active, renewing,
// returning, returned, expired). In-flight states gate concurrent
// interactions: a renew while a return is out with the server fails with
// ErrLicenseInteractionNotAvailable instead of racing it.
//
// # Usage
//
//	lic, err := license.NewLicense(docs, pipeline, store, device, network, decrypter)
//	if err != nil {
//		return err
//	}
//	if lic.CanCopy(ctx, len(excerpt)) {
//		lic.Copy(ctx, len(excerpt))
//	}
//	end, err := lic.RenewLoan(ctx, listener, false)
package license
