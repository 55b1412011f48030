package license_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readium/kotlin-toolkit-sub011/pkg/license"
)

const returnableLinks = `{"rel": "return", "href": "https://lsd.example.com/licenses/lic-1/return{?id,name}", "templated": true}`

func TestReturnPublication(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		returned := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusReturned, ""), nil)
		validation := &fakeValidation{push: &returned}
		network := &fakeNetwork{response: []byte(`{}`)}
		docs := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusActive, returnableLinks), nil)
		lic := newTestLicense(t, docs, validation, network, &fakeDecrypter{})

		require.NoError(t, lic.ReturnPublication(context.Background()))

		call := network.lastCall(t)
		assert.Equal(t, license.MethodPut, call.method)
		assert.Contains(t, call.url, "https://lsd.example.com/licenses/lic-1/return?")
		assert.Contains(t, call.url, "id=dev-1")

		assert.Equal(t, []license.DocumentKind{license.KindStatus}, validation.validatedKinds())
		assert.IsType(t, license.LoanReturned{}, lic.LoanState())
	})

	t.Run("no return link", func(t *testing.T) {
		t.Parallel()

		network := &fakeNetwork{}
		docs := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusActive, ""), nil)
		lic := newTestLicense(t, docs, &fakeValidation{}, network, &fakeDecrypter{})

		err := lic.ReturnPublication(context.Background())
		assert.ErrorIs(t, err, license.ErrLicenseInteractionNotAvailable)
		assert.Empty(t, network.calls)
	})

	t.Run("no status document", func(t *testing.T) {
		t.Parallel()

		docs := mustDocs(t, licenseDocJSON(nil), "", nil)
		lic := newTestLicense(t, docs, &fakeValidation{}, &fakeNetwork{}, &fakeDecrypter{})

		err := lic.ReturnPublication(context.Background())
		assert.ErrorIs(t, err, license.ErrLicenseInteractionNotAvailable)
	})

	t.Run("bad request maps to return failed", func(t *testing.T) {
		t.Parallel()

		network := &fakeNetwork{err: &license.StatusError{Code: 400}}
		docs := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusActive, returnableLinks), nil)
		lic := newTestLicense(t, docs, &fakeValidation{}, network, &fakeDecrypter{})

		err := lic.ReturnPublication(context.Background())
		assert.ErrorIs(t, err, license.ErrReturnFailed)
		assert.IsType(t, license.LoanActive{}, lic.LoanState())
	})

	t.Run("forbidden maps to already returned or expired", func(t *testing.T) {
		t.Parallel()

		network := &fakeNetwork{err: &license.StatusError{Code: 403}}
		docs := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusActive, returnableLinks), nil)
		lic := newTestLicense(t, docs, &fakeValidation{}, network, &fakeDecrypter{})

		err := lic.ReturnPublication(context.Background())
		assert.ErrorIs(t, err, license.ErrAlreadyReturnedOrExpired)
	})

	t.Run("other statuses map to unexpected server error", func(t *testing.T) {
		t.Parallel()

		network := &fakeNetwork{err: &license.StatusError{Code: 502}}
		docs := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusActive, returnableLinks), nil)
		lic := newTestLicense(t, docs, &fakeValidation{}, network, &fakeDecrypter{})

		err := lic.ReturnPublication(context.Background())
		assert.ErrorIs(t, err, license.ErrUnexpectedServerError)
	})

	t.Run("returning twice fails the second time", func(t *testing.T) {
		t.Parallel()

		returned := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusReturned, returnableLinks), nil)
		validation := &fakeValidation{push: &returned}
		network := &fakeNetwork{response: []byte(`{}`)}
		docs := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusActive, returnableLinks), nil)
		lic := newTestLicense(t, docs, validation, network, &fakeDecrypter{})

		require.NoError(t, lic.ReturnPublication(context.Background()))

		err := lic.ReturnPublication(context.Background())
		assert.ErrorIs(t, err, license.ErrAlreadyReturnedOrExpired)
		assert.Len(t, network.calls, 1)
	})

	t.Run("expired loan cannot return", func(t *testing.T) {
		t.Parallel()

		network := &fakeNetwork{}
		docs := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusExpired, returnableLinks), nil)
		lic := newTestLicense(t, docs, &fakeValidation{}, network, &fakeDecrypter{})

		err := lic.ReturnPublication(context.Background())
		assert.ErrorIs(t, err, license.ErrAlreadyReturnedOrExpired)
		assert.Empty(t, network.calls)
	})

	t.Run("validation failure maps to return failed", func(t *testing.T) {
		t.Parallel()

		validation := &fakeValidation{validateErr: assert.AnError}
		network := &fakeNetwork{response: []byte(`{}`)}
		docs := mustDocs(t, licenseDocJSON(nil), statusDocJSON(license.StatusActive, returnableLinks), nil)
		lic := newTestLicense(t, docs, validation, network, &fakeDecrypter{})

		err := lic.ReturnPublication(context.Background())
		assert.ErrorIs(t, err, license.ErrReturnFailed)
		assert.IsType(t, license.LoanActive{}, lic.LoanState())
	})
}
